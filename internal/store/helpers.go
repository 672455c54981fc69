package store

import (
	"database/sql"
	"time"

	"discovery/internal/catalog"
)

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableBool(value *bool) any {
	if value == nil {
		return nil
	}
	if *value {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw sql.NullString) time.Time {
	if !raw.Valid {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, raw.String); err == nil {
		return t
	}
	return time.Time{}
}

func scanBoolPtr(value sql.NullInt64) *bool {
	if !value.Valid {
		return nil
	}
	b := value.Int64 != 0
	return &b
}

func lovedStateColumns(state catalog.LovedState) any {
	switch state {
	case catalog.Loved:
		return 1
	case catalog.Disliked:
		return 0
	default:
		return nil
	}
}

func scanLovedState(value sql.NullInt64) catalog.LovedState {
	if !value.Valid {
		return catalog.LovedNeutral
	}
	if value.Int64 != 0 {
		return catalog.Loved
	}
	return catalog.Disliked
}
