package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"discovery/internal/catalog"
)

const itemColumns = "id, category, title, creator, notes, created_at, updated_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*catalog.Item, error) {
	var (
		id         string
		category   string
		title      string
		creator    sql.NullString
		notes      sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &category, &title, &creator, &notes, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	return &catalog.Item{
		ID:        id,
		Category:  catalog.Category(category),
		Title:     title,
		Creator:   creator.String,
		Notes:     notes.String,
		CreatedAt: parseTime(createdRaw),
		UpdatedAt: parseTime(updatedRaw),
	}, nil
}

// InsertItem persists a newly created item. CreatedAt/UpdatedAt are assigned
// when unset.
func (s *Store) InsertItem(ctx context.Context, item *catalog.Item) error {
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO items (id, category, title, creator, notes, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Category.String(),
		item.Title,
		nullableString(item.Creator),
		nullableString(item.Notes),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateItem rewrites an item's mutable fields. Category and CreatedAt are
// immutable and left untouched.
func (s *Store) UpdateItem(ctx context.Context, item *catalog.Item) error {
	item.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE items SET title = ?, creator = ?, notes = ?, updated_at = ? WHERE id = ?`,
		item.Title,
		nullableString(item.Creator),
		nullableString(item.Notes),
		formatTime(item.UpdatedAt),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update item: no item with id %s", item.ID)
	}
	return nil
}

// GetItem fetches an item by id, returning nil when absent.
func (s *Store) GetItem(ctx context.Context, id string) (*catalog.Item, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item; provenance edges and the rating cascade.
func (s *Store) DeleteItem(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete item rows affected: %w", err)
	}
	return affected > 0, nil
}

// FindItemBySourceKey fetches the item owning a provenance edge with the
// given source and external id, returning nil when no such edge exists.
func (s *Store) FindItemBySourceKey(ctx context.Context, source catalog.Source, externalID string) (*catalog.Item, error) {
	if externalID == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(
		ctx,
		`SELECT i.id, i.category, i.title, i.creator, i.notes, i.created_at, i.updated_at
         FROM items i
         JOIN item_sources e ON i.id = e.item_id
         WHERE e.source = ? AND e.external_id = ?`,
		source.String(),
		externalID,
	)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item by source key: %w", err)
	}
	return item, nil
}

// ItemFilter narrows QueryItems results.
type ItemFilter struct {
	Category catalog.Category
	State    *catalog.LovedState
	Creator  string
	Search   string
	MinStars int
	MaxStars int
	Limit    int
}

// QueryItems lists items matching the filter, ordered by title.
func (s *Store) QueryItems(ctx context.Context, filter ItemFilter) ([]catalog.Item, error) {
	query := `SELECT DISTINCT i.id, i.category, i.title, i.creator, i.notes, i.created_at, i.updated_at
        FROM items i
        LEFT JOIN ratings r ON i.id = r.item_id
        LEFT JOIN item_sources e ON i.id = e.item_id
        WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += " AND i.category = ?"
		args = append(args, filter.Category.String())
	}
	if filter.State != nil {
		switch *filter.State {
		case catalog.Loved:
			query += " AND (r.loved = 1 OR e.source_loved = 1)"
		case catalog.Disliked:
			query += " AND r.loved = 0"
		case catalog.LovedNeutral:
			query += " AND r.loved IS NULL"
		}
	}
	if filter.Creator != "" {
		query += " AND i.creator LIKE ? COLLATE NOCASE"
		args = append(args, "%"+filter.Creator+"%")
	}
	if filter.Search != "" {
		query += " AND (i.title LIKE ? COLLATE NOCASE OR i.creator LIKE ? COLLATE NOCASE)"
		args = append(args, "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.MinStars > 0 {
		query += " AND r.stars >= ?"
		args = append(args, filter.MinStars)
	}
	if filter.MaxStars > 0 {
		query += " AND r.stars <= ?"
		args = append(args, filter.MaxStars)
	}

	query += " ORDER BY i.title COLLATE NOCASE"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
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
