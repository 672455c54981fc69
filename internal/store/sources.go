package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"discovery/internal/catalog"
)

const sourceColumns = "item_id, source, source_key, external_id, raw_title, raw_creator, source_loved, imported_at"

func scanItemSource(scanner interface{ Scan(dest ...any) error }) (*catalog.ItemSource, error) {
	var (
		itemID      string
		source      string
		sourceKey   string
		externalID  sql.NullString
		rawTitle    string
		rawCreator  sql.NullString
		sourceLoved sql.NullInt64
		importedRaw sql.NullString
	)
	if err := scanner.Scan(&itemID, &source, &sourceKey, &externalID, &rawTitle, &rawCreator, &sourceLoved, &importedRaw); err != nil {
		return nil, err
	}
	return &catalog.ItemSource{
		ItemID:      itemID,
		Source:      catalog.Source(source),
		SourceKey:   sourceKey,
		ExternalID:  externalID.String,
		RawTitle:    rawTitle,
		RawCreator:  rawCreator.String,
		SourceLoved: scanBoolPtr(sourceLoved),
		ImportedAt:  parseTime(importedRaw),
	}, nil
}

// UpsertItemSource inserts a provenance edge or refreshes it in place when
// the (item, source, key) triple already exists. Re-importing the same
// record never duplicates the edge.
func (s *Store) UpsertItemSource(ctx context.Context, edge *catalog.ItemSource) error {
	if edge.ImportedAt.IsZero() {
		edge.ImportedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO item_sources (item_id, source, source_key, external_id, raw_title, raw_creator, source_loved, imported_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT (item_id, source, source_key) DO UPDATE SET
            external_id = excluded.external_id,
            raw_title = excluded.raw_title,
            raw_creator = excluded.raw_creator,
            source_loved = excluded.source_loved,
            imported_at = excluded.imported_at`,
		edge.ItemID,
		edge.Source.String(),
		edge.SourceKey,
		nullableString(edge.ExternalID),
		edge.RawTitle,
		nullableString(edge.RawCreator),
		nullableBool(edge.SourceLoved),
		formatTime(edge.ImportedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert item source: %w", err)
	}
	return nil
}

// GetItemSource fetches one provenance edge, returning nil when absent.
func (s *Store) GetItemSource(ctx context.Context, itemID string, source catalog.Source, sourceKey string) (*catalog.ItemSource, error) {
	row := s.db.QueryRowContext(
		ctx,
		"SELECT "+sourceColumns+" FROM item_sources WHERE item_id = ? AND source = ? AND source_key = ?",
		itemID,
		source.String(),
		sourceKey,
	)
	edge, err := scanItemSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item source: %w", err)
	}
	return edge, nil
}

// ItemSources lists every provenance edge for an item.
func (s *Store) ItemSources(ctx context.Context, itemID string) ([]catalog.ItemSource, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT "+sourceColumns+" FROM item_sources WHERE item_id = ? ORDER BY source, source_key",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("list item sources: %w", err)
	}
	defer rows.Close()

	var edges []catalog.ItemSource
	for rows.Next() {
		edge, err := scanItemSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item source: %w", err)
		}
		edges = append(edges, *edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item sources: %w", err)
	}
	return edges, nil
}
