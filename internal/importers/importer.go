package importers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"discovery/internal/catalog"
	"discovery/internal/recon"
)

// Importer parses one service's export format.
type Importer interface {
	// Source identifies the service the importer reads exports from.
	Source() catalog.Source
	// Parse reads an export and returns records in file order.
	Parse(r io.Reader) ([]recon.Record, error)
}

var registry = map[string]Importer{
	"apple-music": appleMusicImporter{},
	"goodreads":   goodreadsImporter{},
	"netflix":     netflixImporter{},
	"qobuz":       qobuzImporter{},
	"spotify":     spotifyImporter{},
	"steam":       steamImporter{},
}

// Lookup resolves an importer by name. Underscores are accepted where the
// registered name uses hyphens.
func Lookup(name string) (Importer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	imp, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown importer %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return imp, nil
}

// Names lists the registered importer names in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GroupByCategory splits records into per-category batches preserving input
// order, for exports that mix kinds. The returned slice orders categories by
// first appearance.
func GroupByCategory(records []recon.Record) []CategoryBatch {
	var batches []CategoryBatch
	index := make(map[catalog.Category]int)
	for _, rec := range records {
		pos, ok := index[rec.Category]
		if !ok {
			pos = len(batches)
			index[rec.Category] = pos
			batches = append(batches, CategoryBatch{Category: rec.Category})
		}
		batches[pos].Records = append(batches[pos].Records, rec)
	}
	return batches
}

// CategoryBatch is one category's slice of an import file.
type CategoryBatch struct {
	Category catalog.Category
	Records  []recon.Record
}
