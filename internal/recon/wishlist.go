package recon

import (
	"context"
	"fmt"

	"discovery/internal/catalog"
	"discovery/internal/logging"
	"discovery/internal/textnorm"
)

// WishlistSatisfied reports whether a catalog item now covers the wishlist
// entry: same category, loosely equal title, and a compatible creator (equal
// normalized forms, or one side missing). Any known name variant of an item
// counts.
func (s *Session) WishlistSatisfied(ctx context.Context, entry catalog.WishlistItem) (bool, error) {
	candidates, err := s.catalog.CandidatesByCategory(ctx, entry.Category)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	for _, candidate := range candidates {
		for _, variant := range candidate.Variants {
			if wishlistVariantMatch(variant, entry) {
				return true, nil
			}
		}
	}
	return false, nil
}

// PruneWishlist removes every wishlist entry in the category that now has a
// corresponding catalog item, returning the removed entries.
func (s *Session) PruneWishlist(ctx context.Context, category catalog.Category) ([]catalog.WishlistItem, error) {
	entries, err := s.catalog.WishlistItems(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	var removed []catalog.WishlistItem
	for _, entry := range entries {
		matched, err := s.WishlistSatisfied(ctx, entry)
		if err != nil {
			return removed, err
		}
		if !matched {
			continue
		}
		ok, err := s.catalog.RemoveWishlistItem(ctx, entry.ID)
		if err != nil {
			return removed, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		if ok {
			removed = append(removed, entry)
			s.logger.Debug("wishlist entry pruned",
				logging.String("title", entry.Title),
				logging.String("category", entry.Category.String()))
		}
	}
	return removed, nil
}

func wishlistVariantMatch(variant catalog.NameVariant, entry catalog.WishlistItem) bool {
	if !textnorm.LooseEqual(variant.Title, entry.Title) {
		return false
	}
	variantCreator := textnorm.Normalize(variant.Creator)
	entryCreator := textnorm.Normalize(entry.Creator)
	if variantCreator == "" || entryCreator == "" {
		return true
	}
	return variantCreator == entryCreator
}
