package importers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"discovery/internal/catalog"
	"discovery/internal/recon"
)

// qobuzImporter reads Qobuz favorites. Qobuz has no native export, so both
// shapes seen in the wild are accepted: a Soundiiz-style CSV (title, artist,
// album columns) and a JSON dump (top-level array, or an object wrapping a
// tracks/items/favorites list).
type qobuzImporter struct{}

func (qobuzImporter) Source() catalog.Source { return catalog.SourceQobuz }

func (imp qobuzImporter) Parse(r io.Reader) ([]recon.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read qobuz export: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return imp.parseJSON(trimmed)
	}
	return imp.parseCSV(bytes.NewReader(raw))
}

func (qobuzImporter) parseCSV(r io.Reader) ([]recon.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read qobuz header: %w", err)
	}
	columns := columnIndex(header)

	var records []recon.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read qobuz row: %w", err)
		}

		title := strings.TrimSpace(field(row, columns, "title"))
		if title == "" {
			title = strings.TrimSpace(field(row, columns, "track"))
		}
		if title == "" {
			continue
		}
		artist := strings.TrimSpace(field(row, columns, "artist"))
		records = append(records, qobuzRecord(title, artist))
	}
	return records, nil
}

func (qobuzImporter) parseJSON(raw []byte) ([]recon.Record, error) {
	var entries []qobuzTrack
	if err := json.Unmarshal(raw, &entries); err != nil {
		var wrapper struct {
			Tracks    []qobuzTrack `json:"tracks"`
			Items     []qobuzTrack `json:"items"`
			Favorites []qobuzTrack `json:"favorites"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("unrecognized qobuz export layout")
		}
		switch {
		case wrapper.Tracks != nil:
			entries = wrapper.Tracks
		case wrapper.Items != nil:
			entries = wrapper.Items
		case wrapper.Favorites != nil:
			entries = wrapper.Favorites
		default:
			return nil, fmt.Errorf("unrecognized qobuz export layout")
		}
	}

	var records []recon.Record
	for _, track := range entries {
		title := strings.TrimSpace(track.Title)
		if title == "" {
			title = strings.TrimSpace(track.Name)
		}
		if title == "" {
			continue
		}
		artist := track.Artist.value
		if artist == "" {
			artist = track.Performer.value
		}
		records = append(records, qobuzRecord(title, artist))
	}
	return records, nil
}

// In favorites means liked.
func qobuzRecord(title, artist string) recon.Record {
	loved := true
	return recon.Record{
		Category:   catalog.CategoryMusic,
		Title:      title,
		Creator:    artist,
		Source:     catalog.SourceQobuz,
		ExternalID: artist + ":" + title,
		Loved:      &loved,
	}
}

type qobuzTrack struct {
	Title     string    `json:"title"`
	Name      string    `json:"name"`
	Artist    qobuzName `json:"artist"`
	Performer qobuzName `json:"performer"`
}

// qobuzName is a plain string in Soundiiz exports and an object carrying a
// name (or title) field in browser-state dumps.
type qobuzName struct {
	value string
}

func (n *qobuzName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n.value = strings.TrimSpace(s)
		return nil
	}
	var obj struct {
		Name  string `json:"name"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	n.value = strings.TrimSpace(obj.Name)
	if n.value == "" {
		n.value = strings.TrimSpace(obj.Title)
	}
	return nil
}
