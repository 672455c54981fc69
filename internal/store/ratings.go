package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"discovery/internal/catalog"
)

// UpsertRating inserts or rewrites the rating row for an item.
func (s *Store) UpsertRating(ctx context.Context, rating *catalog.Rating) error {
	if rating.RatedAt.IsZero() {
		rating.RatedAt = time.Now().UTC()
	}
	userSet := 0
	if rating.UserSet {
		userSet = 1
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO ratings (item_id, loved, stars, notes, user_set, rated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (item_id) DO UPDATE SET
            loved = excluded.loved,
            stars = excluded.stars,
            notes = excluded.notes,
            user_set = excluded.user_set,
            rated_at = excluded.rated_at`,
		rating.ItemID,
		lovedStateColumns(rating.State),
		nullableInt(rating.Stars),
		nullableString(rating.Notes),
		userSet,
		formatTime(rating.RatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// GetRating fetches the rating for an item, returning nil when absent.
func (s *Store) GetRating(ctx context.Context, itemID string) (*catalog.Rating, error) {
	row := s.db.QueryRowContext(
		ctx,
		"SELECT item_id, loved, stars, notes, user_set, rated_at FROM ratings WHERE item_id = ?",
		itemID,
	)
	var (
		id       string
		loved    sql.NullInt64
		stars    sql.NullInt64
		notes    sql.NullString
		userSet  int
		ratedRaw sql.NullString
	)
	err := row.Scan(&id, &loved, &stars, &notes, &userSet, &ratedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return &catalog.Rating{
		ItemID:  id,
		State:   scanLovedState(loved),
		Stars:   int(stars.Int64),
		Notes:   notes.String,
		UserSet: userSet != 0,
		RatedAt: parseTime(ratedRaw),
	}, nil
}
