package recon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"discovery/internal/catalog"
	"discovery/internal/textnorm"
)

// Record is one parsed input row handed to the engine by an importer or the
// manual add flow. Title and Creator are kept verbatim for display; the
// engine normalizes internally for comparison.
type Record struct {
	Category catalog.Category
	Title    string
	Creator  string
	Source   catalog.Source
	// ExternalID is the source's own identifier for the record, when the
	// source provides one.
	ExternalID string
	// Loved carries the source-native loved (true) or disliked (false)
	// flag; nil when the source tracks neither.
	Loved *bool
	Stars int
	Notes string
	// Explicit marks a direct user action (manual add, love/dislike/rate).
	// Explicit state always wins over importer-derived state.
	Explicit bool
}

// Validate rejects records that cannot be reconciled.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("record has empty title")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("record %q has unknown category %q", r.Title, string(r.Category))
	}
	if !r.Source.Valid() {
		return fmt.Errorf("record %q has unknown source %q", r.Title, string(r.Source))
	}
	if r.Stars < 0 || r.Stars > 5 {
		return fmt.Errorf("record %q has rating %d outside 1-5", r.Title, r.Stars)
	}
	return nil
}

// SourceKey returns the provenance edge key for the record: the external id
// when present, otherwise a content fingerprint of the normalized title and
// creator so re-imports of id-less records stay idempotent.
func (r Record) SourceKey() string {
	if r.ExternalID != "" {
		return r.ExternalID
	}
	return contentFingerprint(r.Title, r.Creator)
}

func contentFingerprint(title, creator string) string {
	sum := sha256.Sum256([]byte(textnorm.Normalize(title) + "\n" + textnorm.Normalize(creator)))
	return "fp:" + hex.EncodeToString(sum[:16])
}
