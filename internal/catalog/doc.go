// Package catalog defines the data model shared across the reconciliation
// engine, the storage layer, and the CLI: categories, sources, items,
// provenance edges, ratings, and wishlist entries.
//
// Category and Source are closed enumerations. Importer input is validated
// against them at the boundary so unknown values never reach the matcher.
package catalog
