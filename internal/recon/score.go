package recon

import (
	"strings"

	"discovery/internal/config"
	"discovery/internal/textnorm"
)

// Scorer computes a bounded match confidence between a candidate and a query
// (title, creator) pair. Scores are not percentages: an exact double match
// exceeds 100, and callers compare against the configured thresholds.
type Scorer struct {
	cfg config.Matching
	tok *textnorm.Tokenizer
}

// NewScorer builds a scorer from matching configuration.
func NewScorer(cfg config.Matching) *Scorer {
	return &Scorer{cfg: cfg, tok: textnorm.NewTokenizer(cfg.StopWords)}
}

// Score rates how well the candidate names match the query names.
//
// Creator evidence gates everything: without an exact or containment creator
// match the score is 0. Title evidence (equality, containment, or at least
// one shared token) must also be present, which keeps a shared creator with
// an unrelated title from matching. A containment-only title match against a
// much shorter candidate is penalized so short generic titles do not absorb
// long specific ones. The result is clamped to >= 0.
func (s *Scorer) Score(candidateTitle, candidateCreator, queryTitle, queryCreator string) int {
	candCreator := textnorm.Normalize(candidateCreator)
	queryCreatorNorm := textnorm.Normalize(queryCreator)

	creatorScore := 0
	switch {
	case candCreator == queryCreatorNorm:
		// Both empty counts as agreement: two records that consistently
		// carry no creator can still merge on title evidence.
		creatorScore = s.cfg.CreatorExactWeight
	case candCreator != "" && queryCreatorNorm != "" &&
		(strings.Contains(candCreator, queryCreatorNorm) || strings.Contains(queryCreatorNorm, candCreator)):
		creatorScore = s.cfg.CreatorContainsWeight
	default:
		return 0
	}

	candTitle := textnorm.Normalize(candidateTitle)
	queryTitleNorm := textnorm.Normalize(queryTitle)
	if candTitle == "" || queryTitleNorm == "" {
		return 0
	}

	equal := candTitle == queryTitleNorm
	contains := !equal &&
		(strings.Contains(candTitle, queryTitleNorm) || strings.Contains(queryTitleNorm, candTitle))
	shared := textnorm.Overlap(s.tok.Tokenize(candidateTitle), s.tok.Tokenize(queryTitle))

	titleScore := 0
	switch {
	case equal:
		titleScore = s.cfg.TitleExactWeight
	case contains:
		titleScore = s.cfg.TitleContainsWeight
	}
	titleScore += shared * s.cfg.TokenOverlapBonus
	if titleScore == 0 {
		return 0
	}

	score := creatorScore + titleScore
	if contains && s.shortCandidate(candidateTitle, queryTitle) {
		score -= s.cfg.ShortCandidatePenalty
	}
	if score < 0 {
		score = 0
	}
	return score
}

// shortCandidate reports whether the candidate's raw title is under the
// configured fraction of the query's raw length.
func (s *Scorer) shortCandidate(candidateTitle, queryTitle string) bool {
	candLen := len([]rune(strings.TrimSpace(candidateTitle)))
	queryLen := len([]rune(strings.TrimSpace(queryTitle)))
	if queryLen == 0 {
		return false
	}
	return float64(candLen) < s.cfg.ShortCandidateRatio*float64(queryLen)
}
