package store

import (
	"context"
	"fmt"

	"discovery/internal/catalog"
)

// CategoryStats summarizes one category for the status report.
type CategoryStats struct {
	Total int
	Loved int
}

// CategoryCounts returns item totals and loved counts per category.
func (s *Store) CategoryCounts(ctx context.Context) (map[catalog.Category]CategoryStats, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT
            i.category,
            COUNT(DISTINCT i.id) AS total,
            COUNT(DISTINCT CASE WHEN r.loved = 1 OR e.source_loved = 1 THEN i.id END) AS loved
        FROM items i
        LEFT JOIN ratings r ON i.id = r.item_id
        LEFT JOIN item_sources e ON i.id = e.item_id
        GROUP BY i.category`)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	defer rows.Close()

	stats := make(map[catalog.Category]CategoryStats)
	for rows.Next() {
		var category string
		var entry CategoryStats
		if err := rows.Scan(&category, &entry.Total, &entry.Loved); err != nil {
			return nil, fmt.Errorf("scan category counts: %w", err)
		}
		stats[catalog.Category(category)] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return stats, nil
}

// SourceCounts returns the number of distinct items linked to each source.
func (s *Store) SourceCounts(ctx context.Context) (map[catalog.Source]int, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT source, COUNT(DISTINCT item_id) FROM item_sources GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("source counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[catalog.Source]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("scan source counts: %w", err)
		}
		counts[catalog.Source(source)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source counts: %w", err)
	}
	return counts, nil
}

// WishlistCount returns the number of wishlist entries, optionally scoped to
// one category.
func (s *Store) WishlistCount(ctx context.Context, category catalog.Category) (int, error) {
	query := "SELECT COUNT(1) FROM wishlist_items"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category.String())
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("wishlist count: %w", err)
	}
	return count, nil
}
