package testsupport

import (
	"context"
	"testing"
	"time"

	"discovery/internal/catalog"
	"discovery/internal/config"
	"discovery/internal/store"

	"github.com/google/uuid"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// InsertItem creates a catalog item with a manual provenance edge, returning
// the stored item.
func InsertItem(t testing.TB, st *store.Store, category catalog.Category, title, creator string) *catalog.Item {
	t.Helper()

	item := &catalog.Item{
		ID:       uuid.NewString(),
		Category: category,
		Title:    title,
		Creator:  creator,
	}
	ctx := context.Background()
	if err := st.InsertItem(ctx, item); err != nil {
		t.Fatalf("store.InsertItem: %v", err)
	}
	edge := &catalog.ItemSource{
		ItemID:     item.ID,
		Source:     catalog.SourceManual,
		SourceKey:  item.ID,
		RawTitle:   title,
		RawCreator: creator,
		ImportedAt: time.Now().UTC(),
	}
	if err := st.UpsertItemSource(ctx, edge); err != nil {
		t.Fatalf("store.UpsertItemSource: %v", err)
	}
	return item
}
