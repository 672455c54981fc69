// Package importers parses source export files into reconciliation records.
//
// Each importer understands one service's export format (Spotify JSON,
// Apple Music library XML, Qobuz CSV/JSON, Goodreads CSV, Netflix
// viewing-activity CSV, Steam owned-games JSON) and produces records for
// the import session; it never touches the catalog
// itself. Records carry their own category because some exports mix kinds,
// Netflix interleaving movies and TV shows for example.
package importers
