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

// netflixImporter reads the Netflix ViewingActivity.csv export. Episode rows
// collapse into one record per show; standalone titles become movies. Netflix
// assigns no stable ids and no creators, so records match on title alone.
type netflixImporter struct{}

func (netflixImporter) Source() catalog.Source { return catalog.SourceNetflix }

func (netflixImporter) Parse(r io.Reader) ([]recon.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read netflix header: %w", err)
	}
	columns := columnIndex(header)
	if _, ok := columns["title"]; !ok {
		return nil, errors.New("netflix export missing Title column")
	}

	var records []recon.Record
	seen := make(map[string]struct{})
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read netflix row: %w", err)
		}

		raw := strings.TrimSpace(field(row, columns, "title"))
		if raw == "" {
			continue
		}

		title, category := splitNetflixTitle(raw)
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}

		rec := recon.Record{
			Category: category,
			Title:    title,
			Source:   catalog.SourceNetflix,
		}
		if stars := parseNetflixRating(firstField(row, columns, "rating", "thumbs", "thumb rating")); stars > 0 {
			rec.Stars = stars
			loved := stars >= 4
			rec.Loved = &loved
		}
		records = append(records, rec)
	}
	return records, nil
}

// splitNetflixTitle reduces "Show: Season 2: Episode Name" to the show title.
// Anything without a season or episode segment is treated as a movie.
func splitNetflixTitle(raw string) (string, catalog.Category) {
	parts := strings.Split(raw, ": ")
	if len(parts) >= 3 && strings.Contains(parts[1], "Season") {
		return parts[0], catalog.CategoryTV
	}
	if len(parts) >= 2 && (strings.Contains(parts[1], "Episode") || strings.Contains(parts[1], "Chapter")) {
		return parts[0], catalog.CategoryTV
	}
	return raw, catalog.CategoryMovie
}

// parseNetflixRating maps the thumbs vocabulary onto 1-5 stars: thumbs down
// is 1, thumbs up 4, double thumbs up 5. Returns 0 when unrecognized.
func parseNetflixRating(raw string) int {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return 0
	}
	switch raw {
	case "thumbs down", "thumb down", "down":
		return 1
	case "thumbs up", "thumb up", "up":
		return 4
	case "two thumbs up", "2 thumbs up", "double thumbs up":
		return 5
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	switch val {
	case 1:
		return 1
	case 2:
		return 4
	case 3:
		return 5
	case 4, 5:
		return val
	}
	return 0
}

func firstField(row []string, columns map[string]int, names ...string) string {
	for _, name := range names {
		if value := field(row, columns, name); value != "" {
			return value
		}
	}
	return ""
}
