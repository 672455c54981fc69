package importers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"discovery/internal/catalog"
	"discovery/internal/recon"
)

// goodreadsImporter reads the Goodreads library CSV export
// (goodreads_library_export.csv).
type goodreadsImporter struct{}

func (goodreadsImporter) Source() catalog.Source { return catalog.SourceGoodreads }

func (goodreadsImporter) Parse(r io.Reader) ([]recon.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read goodreads header: %w", err)
	}
	columns := columnIndex(header)
	if _, ok := columns["title"]; !ok {
		return nil, errors.New("goodreads export missing Title column")
	}

	var records []recon.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read goodreads row: %w", err)
		}

		title := strings.TrimSpace(field(row, columns, "title"))
		if title == "" {
			continue
		}

		rec := recon.Record{
			Category:   catalog.CategoryBook,
			Title:      title,
			Creator:    strings.TrimSpace(field(row, columns, "author")),
			Source:     catalog.SourceGoodreads,
			ExternalID: strings.TrimSpace(field(row, columns, "book id")),
		}
		if stars, err := strconv.Atoi(strings.TrimSpace(field(row, columns, "my rating"))); err == nil && stars >= 1 && stars <= 5 {
			rec.Stars = stars
			if stars >= 4 {
				loved := true
				rec.Loved = &loved
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// columnIndex maps lower-cased header names to their positions.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func field(row []string, columns map[string]int, name string) string {
	pos, ok := columns[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}
