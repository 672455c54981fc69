// Package recon implements the record reconciliation engine: deciding
// whether an incoming source record matches an existing catalog item,
// merging fields across sources, and keeping repeated imports idempotent.
//
// The engine is rule-based by design. Creators discriminate better than
// titles in a mixed-category catalog of short strings, so a match requires
// evidence on both fields; the weights, thresholds, and the short-candidate
// penalty are configuration, not code.
package recon
