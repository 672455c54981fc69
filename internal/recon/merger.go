package recon

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"discovery/internal/catalog"
	"discovery/internal/logging"
)

// Action describes what a merge did to the catalog.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
)

// Merger combines an incoming record into a matched item, or creates a new
// item when there is no match.
type Merger struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewMerger builds a merger over the given catalog.
func NewMerger(cat Catalog, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Merger{catalog: cat, logger: logger}
}

// Merge applies rec to the catalog. With a nil existing item it creates a
// new one; otherwise it updates the matched item under the merge rules:
// display fields are first-writer-wins (importers only fill blanks), loved
// state unions, ratings are adopted only when absent, and the provenance
// edge upserts by key. ActionUnchanged is returned when nothing differed.
func (m *Merger) Merge(ctx context.Context, existing *catalog.Item, rec Record) (string, Action, error) {
	if err := rec.Validate(); err != nil {
		return "", "", err
	}
	if existing == nil {
		return m.create(ctx, rec)
	}
	return m.update(ctx, existing, rec)
}

func (m *Merger) create(ctx context.Context, rec Record) (string, Action, error) {
	now := time.Now().UTC()
	item := &catalog.Item{
		ID:        uuid.NewString(),
		Category:  rec.Category,
		Title:     rec.Title,
		Creator:   rec.Creator,
		Notes:     rec.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.catalog.InsertItem(ctx, item); err != nil {
		return "", "", err
	}
	if err := m.catalog.UpsertItemSource(ctx, edgeForRecord(item.ID, rec)); err != nil {
		return "", "", err
	}
	if rating := ratingForRecord(item.ID, rec, nil); rating != nil {
		if err := m.catalog.UpsertRating(ctx, rating); err != nil {
			return "", "", err
		}
	}
	m.logger.Debug("item created",
		logging.String("item", item.ID),
		logging.String("title", item.Title),
		logging.String("source", rec.Source.String()))
	return item.ID, ActionCreated, nil
}

func (m *Merger) update(ctx context.Context, existing *catalog.Item, rec Record) (string, Action, error) {
	item := *existing
	itemChanged := false

	// First-writer-wins for display fields: importers only fill blanks.
	// Explicit title changes go through the dedicated update flow, not merge.
	if item.Creator == "" && rec.Creator != "" {
		item.Creator = rec.Creator
		itemChanged = true
	}
	if item.Notes == "" && rec.Notes != "" {
		item.Notes = rec.Notes
		itemChanged = true
	}
	if itemChanged {
		if err := m.catalog.UpdateItem(ctx, &item); err != nil {
			return "", "", err
		}
	}

	edgeChanged, err := m.reconcileEdge(ctx, item.ID, rec)
	if err != nil {
		return "", "", err
	}

	ratingChanged, err := m.reconcileRating(ctx, item.ID, rec)
	if err != nil {
		return "", "", err
	}

	if !itemChanged && !edgeChanged && !ratingChanged {
		return item.ID, ActionUnchanged, nil
	}
	m.logger.Debug("item updated",
		logging.String("item", item.ID),
		logging.String("title", item.Title),
		logging.String("source", rec.Source.String()),
		logging.Bool("fields", itemChanged),
		logging.Bool("edge", edgeChanged),
		logging.Bool("rating", ratingChanged))
	return item.ID, ActionUpdated, nil
}

func (m *Merger) reconcileEdge(ctx context.Context, itemID string, rec Record) (bool, error) {
	key := rec.SourceKey()
	current, err := m.catalog.GetItemSource(ctx, itemID, rec.Source, key)
	if err != nil {
		return false, err
	}
	next := edgeForRecord(itemID, rec)
	if current != nil && edgesEqual(current, next) {
		return false, nil
	}
	if err := m.catalog.UpsertItemSource(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

func edgesEqual(a, b *catalog.ItemSource) bool {
	if a.ExternalID != b.ExternalID || a.RawTitle != b.RawTitle || a.RawCreator != b.RawCreator {
		return false
	}
	switch {
	case a.SourceLoved == nil && b.SourceLoved == nil:
		return true
	case a.SourceLoved != nil && b.SourceLoved != nil:
		return *a.SourceLoved == *b.SourceLoved
	default:
		return false
	}
}

func edgeForRecord(itemID string, rec Record) *catalog.ItemSource {
	return &catalog.ItemSource{
		ItemID:     itemID,
		Source:     rec.Source,
		SourceKey:  rec.SourceKey(),
		ExternalID: rec.ExternalID,
		RawTitle:   rec.Title,
		RawCreator: rec.Creator,
		SourceLoved: func() *bool {
			if rec.Loved == nil {
				return nil
			}
			v := *rec.Loved
			return &v
		}(),
		ImportedAt: time.Now().UTC(),
	}
}

func (m *Merger) reconcileRating(ctx context.Context, itemID string, rec Record) (bool, error) {
	if rec.Loved == nil && rec.Stars == 0 {
		return false, nil
	}
	current, err := m.catalog.GetRating(ctx, itemID)
	if err != nil {
		return false, err
	}
	next := ratingForRecord(itemID, rec, current)
	if next == nil {
		return false, nil
	}
	if current != nil && current.State == next.State && current.Stars == next.Stars &&
		current.Notes == next.Notes && current.UserSet == next.UserSet {
		return false, nil
	}
	if err := m.catalog.UpsertRating(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// ratingForRecord folds a record's judgment into the current rating.
//
// Union policy: loved survives later neutral imports; an importer-derived
// dislike only upgrades neutral, never downgrades loved. Explicit user
// actions replace the state outright and pin it against future imports.
// Star ratings are never averaged; the first non-null value sticks.
func ratingForRecord(itemID string, rec Record, current *catalog.Rating) *catalog.Rating {
	if rec.Loved == nil && rec.Stars == 0 {
		return nil
	}

	next := catalog.Rating{ItemID: itemID, State: catalog.LovedNeutral}
	if current != nil {
		next = *current
	}
	next.ItemID = itemID
	next.RatedAt = time.Now().UTC()

	if rec.Loved != nil {
		switch {
		case rec.Explicit:
			if *rec.Loved {
				next.State = catalog.Loved
			} else {
				next.State = catalog.Disliked
			}
			next.UserSet = true
		case current != nil && current.UserSet:
			// Explicit user judgment wins over importer-derived state.
		case *rec.Loved:
			next.State = catalog.Loved
		case next.State == catalog.LovedNeutral:
			next.State = catalog.Disliked
		}
	}

	if rec.Stars > 0 && (current == nil || current.Stars == 0) {
		next.Stars = rec.Stars
	}
	if rec.Explicit && rec.Stars > 0 {
		next.Stars = rec.Stars
		next.UserSet = true
	}
	if rec.Notes != "" && next.Notes == "" {
		next.Notes = rec.Notes
	}

	if current == nil && next.State == catalog.LovedNeutral && next.Stars == 0 && next.Notes == "" {
		return nil
	}
	return &next
}
