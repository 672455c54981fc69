package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"discovery/internal/catalog"
)

const wishlistColumns = "id, category, title, creator, notes, created_at"

func scanWishlistItem(scanner interface{ Scan(dest ...any) error }) (*catalog.WishlistItem, error) {
	var (
		id         string
		category   string
		title      string
		creator    sql.NullString
		notes      sql.NullString
		createdRaw sql.NullString
	)
	if err := scanner.Scan(&id, &category, &title, &creator, &notes, &createdRaw); err != nil {
		return nil, err
	}
	return &catalog.WishlistItem{
		ID:        id,
		Category:  catalog.Category(category),
		Title:     title,
		Creator:   creator.String,
		Notes:     notes.String,
		CreatedAt: parseTime(createdRaw),
	}, nil
}

// AddWishlistItem persists a new wishlist entry.
func (s *Store) AddWishlistItem(ctx context.Context, item *catalog.WishlistItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO wishlist_items (id, category, title, creator, notes, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Category.String(),
		item.Title,
		nullableString(item.Creator),
		nullableString(item.Notes),
		formatTime(item.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}
	return nil
}

// WishlistItems lists wishlist entries, optionally scoped to one category,
// ordered by title.
func (s *Store) WishlistItems(ctx context.Context, category catalog.Category) ([]catalog.WishlistItem, error) {
	query := "SELECT " + wishlistColumns + " FROM wishlist_items"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category.String())
	}
	query += " ORDER BY title COLLATE NOCASE"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	var items []catalog.WishlistItem
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist items: %w", err)
	}
	return items, nil
}

// SearchWishlistItems lists wishlist entries whose title or creator contains
// the query text.
func (s *Store) SearchWishlistItems(ctx context.Context, search string, category catalog.Category) ([]catalog.WishlistItem, error) {
	query := "SELECT " + wishlistColumns + ` FROM wishlist_items
        WHERE (title LIKE ? COLLATE NOCASE OR creator LIKE ? COLLATE NOCASE)`
	args := []any{"%" + search + "%", "%" + search + "%"}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category.String())
	}
	query += " ORDER BY title COLLATE NOCASE"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search wishlist items: %w", err)
	}
	defer rows.Close()

	var items []catalog.WishlistItem
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist items: %w", err)
	}
	return items, nil
}

// RemoveWishlistItem deletes a wishlist entry by id, reporting whether a row
// was removed.
func (s *Store) RemoveWishlistItem(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM wishlist_items WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("remove wishlist item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove wishlist item rows affected: %w", err)
	}
	return affected > 0, nil
}
