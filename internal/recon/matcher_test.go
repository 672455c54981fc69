package recon_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"discovery/internal/catalog"
	"discovery/internal/recon"
	"discovery/internal/testsupport"
)

func newMatcher(t *testing.T) *recon.Matcher {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	return recon.NewMatcher(st, cfg.Matching, nil)
}

func TestFindMatchEmptyCatalog(t *testing.T) {
	matcher := newMatcher(t)

	match, err := matcher.FindMatch(context.Background(), catalog.CategoryMusic, "Discovery", "Daft Punk", recon.ModeStrict)
	require.NoError(t, err)
	require.Nil(t, match)
}

func TestFindMatchExact(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	matcher := recon.NewMatcher(st, cfg.Matching, nil)

	item := testsupport.InsertItem(t, st, catalog.CategoryMusic, "Random Access Memories", "Daft Punk")

	match, err := matcher.FindMatch(context.Background(), catalog.CategoryMusic, "random access memories", "daft punk", recon.ModeStrict)
	require.NoError(t, err)
	require.NotNil(t, match)
	require.Equal(t, item.ID, match.ItemID)
	require.GreaterOrEqual(t, match.Score, cfg.Matching.StrictThreshold)
}

func TestFindMatchCategoryIsolation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	matcher := recon.NewMatcher(st, cfg.Matching, nil)

	testsupport.InsertItem(t, st, catalog.CategoryBook, "Dune", "Frank Herbert")

	// An identically named work in another category never matches.
	match, err := matcher.FindMatch(context.Background(), catalog.CategoryMovie, "Dune", "Frank Herbert", recon.ModeStrict)
	require.NoError(t, err)
	require.Nil(t, match)
}

func TestFindMatchLooseModeAcceptsWeakerEvidence(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	matcher := recon.NewMatcher(st, cfg.Matching, nil)

	item := testsupport.InsertItem(t, st, catalog.CategoryMusic, "Random Access Memories", "Daft Punk")

	// Token overlap only: exact creator plus two shared title tokens lands
	// between the loose and strict thresholds.
	ctx := context.Background()
	strict, err := matcher.FindMatch(ctx, catalog.CategoryMusic, "Memories of Access", "Daft Punk", recon.ModeStrict)
	require.NoError(t, err)
	require.Nil(t, strict)

	loose, err := matcher.FindMatch(ctx, catalog.CategoryMusic, "Memories of Access", "Daft Punk", recon.ModeLoose)
	require.NoError(t, err)
	require.NotNil(t, loose)
	require.Equal(t, item.ID, loose.ItemID)
}

func TestFindMatchUsesSourceVariants(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	matcher := recon.NewMatcher(st, cfg.Matching, nil)

	item := testsupport.InsertItem(t, st, catalog.CategoryBook, "1984", "George Orwell")
	err := st.UpsertItemSource(context.Background(), &catalog.ItemSource{
		ItemID:     item.ID,
		Source:     catalog.SourceGoodreads,
		SourceKey:  "gr-1984",
		ExternalID: "gr-1984",
		RawTitle:   "Nineteen Eighty-Four",
		RawCreator: "George Orwell",
		ImportedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// The display title alone would not match, but the raw source name does.
	match, err := matcher.FindMatch(context.Background(), catalog.CategoryBook, "Nineteen Eighty-Four", "George Orwell", recon.ModeStrict)
	require.NoError(t, err)
	require.NotNil(t, match)
	require.Equal(t, item.ID, match.ItemID)
}

func TestFindMatchTieBreaksOnCorroboration(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	matcher := recon.NewMatcher(st, cfg.Matching, nil)

	ctx := context.Background()
	first := testsupport.InsertItem(t, st, catalog.CategoryGame, "Portal", "Valve")
	second := testsupport.InsertItem(t, st, catalog.CategoryGame, "Portal", "Valve")

	// A second provenance edge makes the later item the better corroborated
	// one, overriding the older-first tie break.
	err := st.UpsertItemSource(ctx, &catalog.ItemSource{
		ItemID:     second.ID,
		Source:     catalog.SourceSteam,
		SourceKey:  "steam-400",
		ExternalID: "steam-400",
		RawTitle:   "Portal",
		RawCreator: "Valve",
		ImportedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	match, err := matcher.FindMatch(ctx, catalog.CategoryGame, "Portal", "Valve", recon.ModeStrict)
	require.NoError(t, err)
	require.NotNil(t, match)
	require.Equal(t, second.ID, match.ItemID)
	require.NotEqual(t, first.ID, match.ItemID)
}

func TestFindMatchRejectsUnknownCategory(t *testing.T) {
	matcher := newMatcher(t)

	_, err := matcher.FindMatch(context.Background(), catalog.Category("vinyl"), "Discovery", "Daft Punk", recon.ModeStrict)
	require.Error(t, err)
}
