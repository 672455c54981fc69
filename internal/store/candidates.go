package store

import (
	"context"
	"database/sql"
	"fmt"

	"discovery/internal/catalog"
)

// CandidatesByCategory loads every item in a category together with its raw
// name variants, ordered by creation time so tie-breaks are deterministic.
func (s *Store) CandidatesByCategory(ctx context.Context, category catalog.Category) ([]catalog.Candidate, error) {
	items, err := s.itemsByCategoryOrdered(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	candidates := make([]catalog.Candidate, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		candidate := catalog.Candidate{
			Item:     item,
			Variants: []catalog.NameVariant{{Title: item.Title, Creator: item.Creator}},
		}
		index[item.ID] = len(candidates)
		candidates = append(candidates, candidate)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT e.item_id, e.raw_title, e.raw_creator
         FROM item_sources e
         JOIN items i ON i.id = e.item_id
         WHERE i.category = ?`,
		category.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("load candidate variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, rawTitle string
		var rawCreator sql.NullString
		if err := rows.Scan(&itemID, &rawTitle, &rawCreator); err != nil {
			return nil, fmt.Errorf("scan candidate variant: %w", err)
		}
		pos, ok := index[itemID]
		if !ok {
			continue
		}
		candidates[pos].SourceCount++
		variant := catalog.NameVariant{Title: rawTitle, Creator: rawCreator.String}
		if !hasVariant(candidates[pos].Variants, variant) {
			candidates[pos].Variants = append(candidates[pos].Variants, variant)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate variants: %w", err)
	}
	return candidates, nil
}

func (s *Store) itemsByCategoryOrdered(ctx context.Context, category catalog.Category) ([]catalog.Item, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT "+itemColumns+" FROM items WHERE category = ? ORDER BY created_at, id",
		category.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("items by category: %w", err)
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func hasVariant(variants []catalog.NameVariant, variant catalog.NameVariant) bool {
	for _, existing := range variants {
		if existing == variant {
			return true
		}
	}
	return false
}
