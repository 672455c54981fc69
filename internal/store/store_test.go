package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"discovery/internal/catalog"
	"discovery/internal/store"
	"discovery/internal/testsupport"
)

func TestOpenCreatesSchemaAndLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if _, err := os.Stat(st.Path()); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
	if _, err := os.Stat(st.LockPath()); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}

	// A second open against the same database must fail fast: the store is
	// single writer.
	_, err := store.Open(cfg)
	require.Error(t, err)
}

func TestOpenIsIdempotentAcrossRestarts(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	st, err := store.Open(cfg)
	require.NoError(t, err)
	item := testsupport.InsertItem(t, st, catalog.CategoryBook, "Dune", "Frank Herbert")
	require.NoError(t, st.Close())

	// Reopening replays no migrations and keeps the data.
	st2, err := store.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st2.Close() })

	got, err := st2.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Dune", got.Title)
}

func TestItemRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item := &catalog.Item{
		ID:       uuid.NewString(),
		Category: catalog.CategoryMusic,
		Title:    "Random Access Memories",
		Creator:  "Daft Punk",
		Notes:    "2013",
	}
	require.NoError(t, st.InsertItem(ctx, item))
	require.False(t, item.CreatedAt.IsZero())

	got, err := st.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, item.Title, got.Title)
	require.Equal(t, item.Creator, got.Creator)
	require.Equal(t, item.Notes, got.Notes)

	got.Creator = "Daft Punk (FR)"
	require.NoError(t, st.UpdateItem(ctx, got))

	updated, err := st.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, "Daft Punk (FR)", updated.Creator)
	require.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	missing, err := st.GetItem(ctx, "no-such-id")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUpsertItemSourceReplacesByKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item := testsupport.InsertItem(t, st, catalog.CategoryGame, "Portal", "Valve")

	edge := &catalog.ItemSource{
		ItemID:     item.ID,
		Source:     catalog.SourceSteam,
		SourceKey:  "steam-400",
		ExternalID: "steam-400",
		RawTitle:   "Portal",
		RawCreator: "Valve",
		ImportedAt: time.Now().UTC(),
	}
	require.NoError(t, st.UpsertItemSource(ctx, edge))

	edge.RawTitle = "Portal (2007)"
	require.NoError(t, st.UpsertItemSource(ctx, edge))

	edges, err := st.ItemSources(ctx, item.ID)
	require.NoError(t, err)
	// Manual edge from the fixture plus exactly one steam edge.
	require.Len(t, edges, 2)

	got, err := st.GetItemSource(ctx, item.ID, catalog.SourceSteam, "steam-400")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Portal (2007)", got.RawTitle)
}

func TestFindItemBySourceKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item := testsupport.InsertItem(t, st, catalog.CategoryBook, "Dune", "Frank Herbert")
	require.NoError(t, st.UpsertItemSource(ctx, &catalog.ItemSource{
		ItemID:     item.ID,
		Source:     catalog.SourceGoodreads,
		SourceKey:  "gr-dune",
		ExternalID: "gr-dune",
		RawTitle:   "Dune",
		ImportedAt: time.Now().UTC(),
	}))

	got, err := st.FindItemBySourceKey(ctx, catalog.SourceGoodreads, "gr-dune")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, item.ID, got.ID)

	// Same id under a different source does not resolve.
	none, err := st.FindItemBySourceKey(ctx, catalog.SourceKindle, "gr-dune")
	require.NoError(t, err)
	require.Nil(t, none)

	none, err = st.FindItemBySourceKey(ctx, catalog.SourceGoodreads, "")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestRatingUpsert(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item := testsupport.InsertItem(t, st, catalog.CategoryMovie, "Arrival", "Denis Villeneuve")

	none, err := st.GetRating(ctx, item.ID)
	require.NoError(t, err)
	require.Nil(t, none)

	require.NoError(t, st.UpsertRating(ctx, &catalog.Rating{
		ItemID: item.ID,
		State:  catalog.Loved,
		Stars:  5,
	}))
	require.NoError(t, st.UpsertRating(ctx, &catalog.Rating{
		ItemID:  item.ID,
		State:   catalog.Disliked,
		UserSet: true,
	}))

	got, err := st.GetRating(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, catalog.Disliked, got.State)
	require.Equal(t, 0, got.Stars)
	require.True(t, got.UserSet)
}

func TestDeleteItemCascades(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item := testsupport.InsertItem(t, st, catalog.CategoryMusic, "Homework", "Daft Punk")
	require.NoError(t, st.UpsertRating(ctx, &catalog.Rating{ItemID: item.ID, State: catalog.Loved}))

	deleted, err := st.DeleteItem(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	edges, err := st.ItemSources(ctx, item.ID)
	require.NoError(t, err)
	require.Empty(t, edges)

	rating, err := st.GetRating(ctx, item.ID)
	require.NoError(t, err)
	require.Nil(t, rating)

	deleted, err = st.DeleteItem(ctx, item.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestQueryItemsFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ram := testsupport.InsertItem(t, st, catalog.CategoryMusic, "Random Access Memories", "Daft Punk")
	testsupport.InsertItem(t, st, catalog.CategoryMusic, "OK Computer", "Radiohead")
	testsupport.InsertItem(t, st, catalog.CategoryBook, "Dune", "Frank Herbert")

	require.NoError(t, st.UpsertRating(ctx, &catalog.Rating{ItemID: ram.ID, State: catalog.Loved, Stars: 5}))

	music, err := st.QueryItems(ctx, store.ItemFilter{Category: catalog.CategoryMusic})
	require.NoError(t, err)
	require.Len(t, music, 2)

	daft, err := st.QueryItems(ctx, store.ItemFilter{Creator: "daft"})
	require.NoError(t, err)
	require.Len(t, daft, 1)
	require.Equal(t, ram.ID, daft[0].ID)

	loved := catalog.Loved
	lovedItems, err := st.QueryItems(ctx, store.ItemFilter{State: &loved})
	require.NoError(t, err)
	require.Len(t, lovedItems, 1)

	search, err := st.QueryItems(ctx, store.ItemFilter{Search: "memories"})
	require.NoError(t, err)
	require.Len(t, search, 1)
}

func TestCandidatesByCategoryCollectsVariants(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item := testsupport.InsertItem(t, st, catalog.CategoryBook, "1984", "George Orwell")
	require.NoError(t, st.UpsertItemSource(ctx, &catalog.ItemSource{
		ItemID:     item.ID,
		Source:     catalog.SourceGoodreads,
		SourceKey:  "gr-1984",
		ExternalID: "gr-1984",
		RawTitle:   "Nineteen Eighty-Four",
		RawCreator: "George Orwell",
		ImportedAt: time.Now().UTC(),
	}))
	testsupport.InsertItem(t, st, catalog.CategoryMovie, "1984", "Michael Radford")

	candidates, err := st.CandidatesByCategory(ctx, catalog.CategoryBook)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, item.ID, candidates[0].Item.ID)
	require.Equal(t, 2, candidates[0].SourceCount)

	titles := make([]string, 0, len(candidates[0].Variants))
	for _, variant := range candidates[0].Variants {
		titles = append(titles, variant.Title)
	}
	require.Contains(t, titles, "1984")
	require.Contains(t, titles, "Nineteen Eighty-Four")
}

func TestWishlistLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	entry := &catalog.WishlistItem{
		ID:       uuid.NewString(),
		Category: catalog.CategoryBook,
		Title:    "Project Hail Mary",
		Creator:  "Andy Weir",
	}
	require.NoError(t, st.AddWishlistItem(ctx, entry))

	all, err := st.WishlistItems(ctx, catalog.CategoryBook)
	require.NoError(t, err)
	require.Len(t, all, 1)

	found, err := st.SearchWishlistItems(ctx, "hail", catalog.CategoryBook)
	require.NoError(t, err)
	require.Len(t, found, 1)

	count, err := st.WishlistCount(ctx, catalog.CategoryBook)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	removed, err := st.RemoveWishlistItem(ctx, entry.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = st.RemoveWishlistItem(ctx, entry.ID)
	require.NoError(t, err)
	require.False(t, removed)
}

func TestStatsCounts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ram := testsupport.InsertItem(t, st, catalog.CategoryMusic, "Random Access Memories", "Daft Punk")
	testsupport.InsertItem(t, st, catalog.CategoryBook, "Dune", "Frank Herbert")
	require.NoError(t, st.UpsertRating(ctx, &catalog.Rating{ItemID: ram.ID, State: catalog.Loved}))

	byCategory, err := st.CategoryCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, byCategory[catalog.CategoryMusic].Total)
	require.Equal(t, 1, byCategory[catalog.CategoryMusic].Loved)
	require.Equal(t, 1, byCategory[catalog.CategoryBook].Total)
	require.Equal(t, 0, byCategory[catalog.CategoryBook].Loved)

	bySource, err := st.SourceCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, bySource[catalog.SourceManual])
}
