package recon

import (
	"context"

	"discovery/internal/catalog"
)

// Catalog is the storage surface the engine reconciles against. The store
// package provides the SQLite implementation; tests may substitute fakes.
type Catalog interface {
	CandidatesByCategory(ctx context.Context, category catalog.Category) ([]catalog.Candidate, error)
	FindItemBySourceKey(ctx context.Context, source catalog.Source, externalID string) (*catalog.Item, error)
	GetItem(ctx context.Context, id string) (*catalog.Item, error)
	InsertItem(ctx context.Context, item *catalog.Item) error
	UpdateItem(ctx context.Context, item *catalog.Item) error
	GetItemSource(ctx context.Context, itemID string, source catalog.Source, sourceKey string) (*catalog.ItemSource, error)
	UpsertItemSource(ctx context.Context, edge *catalog.ItemSource) error
	GetRating(ctx context.Context, itemID string) (*catalog.Rating, error)
	UpsertRating(ctx context.Context, rating *catalog.Rating) error
	WishlistItems(ctx context.Context, category catalog.Category) ([]catalog.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, id string) (bool, error)
}
