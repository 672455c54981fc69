package recon

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"discovery/internal/catalog"
	"discovery/internal/config"
	"discovery/internal/logging"
)

// ErrStorageUnavailable marks systemic storage failures that abort a session.
// Per-record write failures are recorded in the report instead; completed
// merges stay committed either way.
var ErrStorageUnavailable = errors.New("storage unavailable")

// RecordFailure captures one record that could not be merged.
type RecordFailure struct {
	Title  string
	Source catalog.Source
	Reason string
}

// Report summarizes an import run.
type Report struct {
	Created   int
	Updated   int
	Unchanged int
	Skipped   int
	Failures  []RecordFailure
	// PrunedWishlist lists wishlist entries removed because the run
	// produced a matching catalog item.
	PrunedWishlist []catalog.WishlistItem
}

// Processed returns the number of records that reached the merger.
func (r *Report) Processed() int {
	return r.Created + r.Updated + r.Unchanged
}

// Session orchestrates one import run: match then merge per record, strictly
// in input order, with per-record failure tolerance and a wishlist prune at
// the end. Sessions are single-use and must not run concurrently; the store
// holds a single writer.
type Session struct {
	catalog Catalog
	matcher *Matcher
	merger  *Merger
	logger  *slog.Logger
}

// NewSession wires a session over the catalog with the given matching
// parameters.
func NewSession(cat Catalog, cfg config.Matching, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		catalog: cat,
		matcher: NewMatcher(cat, cfg, logger),
		merger:  NewMerger(cat, logger),
		logger:  logger,
	}
}

// Matcher exposes the session's matcher for the interactive duplicate
// prompt, which runs it in loose mode.
func (s *Session) Matcher() *Matcher { return s.matcher }

// Merger exposes the session's merger for the manual add flow.
func (s *Session) Merger() *Merger { return s.merger }

// Run processes records sequentially so later records reconcile against
// items created earlier in the same batch. Invalid records are skipped,
// single-record merge failures are recorded and the run continues, and
// systemic storage failures abort immediately with the partial report.
func (s *Session) Run(ctx context.Context, category catalog.Category, records iter.Seq[Record]) (*Report, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("import session: unknown category %q", string(category))
	}

	report := &Report{}
	for rec := range records {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}

		if rec.Category == "" {
			rec.Category = category
		}
		if strings.TrimSpace(rec.Title) == "" || rec.Category != category || rec.Validate() != nil {
			report.Skipped++
			continue
		}

		action, err := s.processRecord(ctx, rec)
		if err != nil {
			if errors.Is(err, ErrStorageUnavailable) {
				return report, err
			}
			report.Failures = append(report.Failures, RecordFailure{
				Title:  rec.Title,
				Source: rec.Source,
				Reason: err.Error(),
			})
			s.logger.Warn("record merge failed",
				logging.String("title", rec.Title),
				logging.String("source", rec.Source.String()),
				logging.Error(err))
			continue
		}

		switch action {
		case ActionCreated:
			report.Created++
		case ActionUpdated:
			report.Updated++
		case ActionUnchanged:
			report.Unchanged++
		}
	}

	pruned, err := s.PruneWishlist(ctx, category)
	if err != nil {
		return report, err
	}
	report.PrunedWishlist = pruned

	s.logger.Info("import session finished",
		logging.String("category", category.String()),
		logging.Int("created", report.Created),
		logging.Int("updated", report.Updated),
		logging.Int("unchanged", report.Unchanged),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", len(report.Failures)),
		logging.Int("wishlist_pruned", len(report.PrunedWishlist)))
	return report, nil
}

// processRecord resolves a record's identity and merges it. Read-path
// failures are systemic (the catalog cannot be consulted); write-path
// failures stay scoped to the record.
func (s *Session) processRecord(ctx context.Context, rec Record) (Action, error) {
	// A known external id pins the record to its previously imported item
	// before any fuzzy matching.
	if rec.ExternalID != "" {
		item, err := s.catalog.FindItemBySourceKey(ctx, rec.Source, rec.ExternalID)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		if item != nil {
			_, action, err := s.merger.Merge(ctx, item, rec)
			return action, err
		}
	}

	match, err := s.matcher.FindMatch(ctx, rec.Category, rec.Title, rec.Creator, ModeStrict)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	var existing *catalog.Item
	if match != nil {
		existing, err = s.catalog.GetItem(ctx, match.ItemID)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
	}

	_, action, err := s.merger.Merge(ctx, existing, rec)
	return action, err
}
