package recon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"discovery/internal/config"
)

func TestScore(t *testing.T) {
	scorer := NewScorer(config.Default().Matching)

	tests := []struct {
		name         string
		candTitle    string
		candCreator  string
		queryTitle   string
		queryCreator string
		want         int
	}{
		{
			name:         "exact title and creator",
			candTitle:    "Dune",
			candCreator:  "Frank Herbert",
			queryTitle:   "Dune",
			queryCreator: "Frank Herbert",
			// creator exact 90 + title exact 90 + one shared token.
			want: 184,
		},
		{
			name:         "case and diacritics ignored",
			candTitle:    "Amélie",
			candCreator:  "Jean-Pierre Jeunet",
			queryTitle:   "amelie",
			queryCreator: "jean pierre jeunet",
			want:         184,
		},
		{
			name:         "creator mismatch gates to zero",
			candTitle:    "Dune",
			candCreator:  "Frank Herbert",
			queryTitle:   "Dune",
			queryCreator: "Andy Weir",
			want:         0,
		},
		{
			name:         "creator missing on one side gates to zero",
			candTitle:    "Dune",
			candCreator:  "",
			queryTitle:   "Dune",
			queryCreator: "Frank Herbert",
			want:         0,
		},
		{
			name:         "creator missing on the query side gates to zero",
			candTitle:    "Dune",
			candCreator:  "Frank Herbert",
			queryTitle:   "Dune",
			queryCreator: "",
			want:         0,
		},
		{
			name:         "both creators absent count as agreement",
			candTitle:    "Dune",
			candCreator:  "",
			queryTitle:   "Dune",
			queryCreator: "",
			want:         184,
		},
		{
			name:         "shared creator without title evidence scores zero",
			candTitle:    "The White Plague",
			candCreator:  "Frank Herbert",
			queryTitle:   "Dune",
			queryCreator: "Frank Herbert",
			want:         0,
		},
		{
			name:         "title containment with token overlap",
			candTitle:    "Blade Runner 2049",
			candCreator:  "Denis Villeneuve",
			queryTitle:   "Blade Runner",
			queryCreator: "Denis Villeneuve",
			// creator exact 90 + containment 55 + two shared tokens.
			want: 153,
		},
		{
			name:         "short candidate containment is penalized",
			candTitle:    "It",
			candCreator:  "Stephen King",
			queryTitle:   "It Chapter Two",
			queryCreator: "Stephen King",
			// creator exact 90 + containment 55 - short penalty 60.
			want: 85,
		},
		{
			name:         "token overlap only stays below the strict threshold",
			candTitle:    "Random Access Memories",
			candCreator:  "Daft Punk",
			queryTitle:   "Memories of Access",
			queryCreator: "Daft Punk",
			// creator exact 90 + two shared tokens.
			want: 98,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scorer.Score(tc.candTitle, tc.candCreator, tc.queryTitle, tc.queryCreator)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestScoreExactSelfMatchClearsStrictThreshold(t *testing.T) {
	cfg := config.Default().Matching
	scorer := NewScorer(cfg)

	titles := []struct{ title, creator string }{
		{"Random Access Memories", "Daft Punk"},
		{"Project Hail Mary", "Andy Weir"},
		{"Outer Wilds", "Mobius Digital"},
		{"Amélie", "Jean-Pierre Jeunet"},
	}
	for _, entry := range titles {
		got := scorer.Score(entry.title, entry.creator, entry.title, entry.creator)
		require.GreaterOrEqual(t, got, cfg.StrictThreshold, "self match for %q", entry.title)
	}
}

func TestScoreClampsAtZero(t *testing.T) {
	cfg := config.Default().Matching
	cfg.ShortCandidatePenalty = 200
	scorer := NewScorer(cfg)

	got := scorer.Score("It", "Stephen King", "It Chapter Two", "Stephen King")
	require.Equal(t, 0, got)
}

func TestScoreSymmetricContainment(t *testing.T) {
	scorer := NewScorer(config.Default().Matching)

	// Containment works both directions; only the short-candidate penalty is
	// asymmetric.
	long := scorer.Score("Blade Runner The Final Cut", "Ridley Scott", "Blade Runner", "Ridley Scott")
	short := scorer.Score("Blade Runner", "Ridley Scott", "Blade Runner The Final Cut", "Ridley Scott")
	require.Greater(t, long, 0)
	require.Greater(t, short, 0)
	require.Greater(t, long, short)
}
