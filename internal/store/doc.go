// Package store persists the Discovery catalog in SQLite: items, their
// provenance edges, ratings, and the wishlist.
//
// The database holds a single writer. Open takes a lock file next to the
// database and fails fast when another process holds it, so concurrent
// invocations cannot interleave reconciliation writes.
package store
