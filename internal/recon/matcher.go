package recon

import (
	"context"
	"fmt"
	"log/slog"

	"discovery/internal/catalog"
	"discovery/internal/config"
	"discovery/internal/logging"
)

// Mode selects the acceptance threshold for a match lookup.
type Mode int

const (
	// ModeStrict is used for automatic import-time matching.
	ModeStrict Mode = iota
	// ModeLoose is used for the interactive duplicate prompt, where a human
	// confirms or rejects the best candidate.
	ModeLoose
)

// Match is an accepted candidate.
type Match struct {
	ItemID  string
	Title   string
	Creator string
	Score   int
}

// Matcher finds the best existing catalog item for incoming names within one
// category.
type Matcher struct {
	catalog Catalog
	scorer  *Scorer
	cfg     config.Matching
	logger  *slog.Logger
}

// NewMatcher builds a matcher over the given catalog.
func NewMatcher(cat Catalog, cfg config.Matching, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Matcher{catalog: cat, scorer: NewScorer(cfg), cfg: cfg, logger: logger}
}

// Scorer exposes the underlying scorer, mainly for diagnostics.
func (m *Matcher) Scorer() *Scorer { return m.scorer }

// FindMatch scores every same-category candidate against the incoming title
// and creator and returns the best one at or above the mode's threshold, or
// nil when nothing qualifies.
//
// Each candidate is scored against all of its known name variants (display
// fields plus raw source text) and keeps its own best. Ties at or above the
// threshold resolve deterministically: most provenance edges first, then
// earliest creation, then smallest id.
func (m *Matcher) FindMatch(ctx context.Context, category catalog.Category, title, creator string, mode Mode) (*Match, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("find match: unknown category %q", string(category))
	}

	candidates, err := m.catalog.CandidatesByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	threshold := m.cfg.StrictThreshold
	if mode == ModeLoose {
		threshold = m.cfg.LooseThreshold
	}

	var best *catalog.Candidate
	bestScore := 0
	for idx := range candidates {
		candidate := &candidates[idx]
		score := 0
		for _, variant := range candidate.Variants {
			if s := m.scorer.Score(variant.Title, variant.Creator, title, creator); s > score {
				score = s
			}
		}
		if score < threshold {
			continue
		}
		if best == nil || score > bestScore || (score == bestScore && preferCandidate(candidate, best)) {
			best = candidate
			bestScore = score
		}
	}

	if best == nil {
		return nil, nil
	}

	m.logger.Debug("match found",
		logging.String("category", category.String()),
		logging.String("query_title", title),
		logging.String("matched_item", best.Item.ID),
		logging.String("matched_title", best.Item.Title),
		logging.Int("score", bestScore),
		logging.Int("threshold", threshold))

	return &Match{
		ItemID:  best.Item.ID,
		Title:   best.Item.Title,
		Creator: best.Item.Creator,
		Score:   bestScore,
	}, nil
}

// preferCandidate reports whether a should displace b at an equal score:
// better corroborated first, then older, then smaller id for stability.
func preferCandidate(a, b *catalog.Candidate) bool {
	if a.SourceCount != b.SourceCount {
		return a.SourceCount > b.SourceCount
	}
	if !a.Item.CreatedAt.Equal(b.Item.CreatedAt) {
		return a.Item.CreatedAt.Before(b.Item.CreatedAt)
	}
	return a.Item.ID < b.Item.ID
}
