package catalog

import "time"

// LovedState is the tri-state user judgment on an item.
type LovedState int

const (
	LovedNeutral LovedState = iota
	Loved
	Disliked
)

// String returns a display label for the state.
func (s LovedState) String() string {
	switch s {
	case Loved:
		return "loved"
	case Disliked:
		return "disliked"
	default:
		return "neutral"
	}
}

// Item is one deduplicated catalog entry. The id is assigned on first
// creation and never reassigned; category is immutable after creation.
type Item struct {
	ID        string
	Category  Category
	Title     string
	Creator   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemSource links an item to one external source's version of it.
//
// SourceKey is the external id when the source provides one, otherwise a
// content fingerprint of the raw title/creator. At most one edge exists per
// (item, source, key) triple; re-importing the same record updates the edge
// in place.
type ItemSource struct {
	ItemID     string
	Source     Source
	SourceKey  string
	ExternalID string
	RawTitle   string
	RawCreator string
	// SourceLoved carries the source-native loved/disliked flag when the
	// source tracks one (nil when it does not).
	SourceLoved *bool
	ImportedAt  time.Time
}

// Rating is the user's judgment for an item, one row per item.
//
// UserSet distinguishes explicit user actions (love/dislike/rate commands)
// from importer-derived state; an explicit action is never overridden by a
// later import.
type Rating struct {
	ItemID  string
	State   LovedState
	Stars   int // 1-5, 0 when unset
	Notes   string
	UserSet bool
	RatedAt time.Time
}

// WishlistItem is a category-scoped future-intent entry. It is independent
// of catalog items and is removed once a matching item exists.
type WishlistItem struct {
	ID        string
	Category  Category
	Title     string
	Creator   string
	Notes     string
	CreatedAt time.Time
}
