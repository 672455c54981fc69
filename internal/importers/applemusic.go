package importers

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"discovery/internal/catalog"
	"discovery/internal/recon"
)

// appleMusicImporter reads the iTunes/Music "Export Library" XML plist.
// Tracks live under the top-level "Tracks" dict, keyed by track id.
type appleMusicImporter struct{}

func (appleMusicImporter) Source() catalog.Source { return catalog.SourceAppleMusic }

func (imp appleMusicImporter) Parse(r io.Reader) ([]recon.Record, error) {
	tracks, err := appleLibraryTracks(xml.NewDecoder(r))
	if err != nil {
		return nil, err
	}

	var records []recon.Record
	for _, track := range tracks {
		title := strings.TrimSpace(plistString(track, "Name"))
		if title == "" {
			continue
		}
		// The library export mixes in podcasts and audiobooks; only plain
		// music tracks belong here.
		kind := strings.ToLower(plistString(track, "Kind"))
		if strings.Contains(kind, "podcast") || strings.Contains(kind, "audiobook") {
			continue
		}

		rec := recon.Record{
			Category: catalog.CategoryMusic,
			Title:    title,
			Creator:  strings.TrimSpace(plistString(track, "Artist")),
			Source:   catalog.SourceAppleMusic,
		}
		if id, ok := track["Track ID"].(int); ok {
			rec.ExternalID = strconv.Itoa(id)
		}
		// Loved=false in the export is merely "not loved", never a dislike.
		if loved, ok := track["Loved"].(bool); ok && loved {
			rec.Loved = &loved
		}
		records = append(records, rec)
	}
	return records, nil
}

type plistDict map[string]any

// appleLibraryTracks walks the plist to the Tracks dict and returns its
// track dicts in document order.
func appleLibraryTracks(dec *xml.Decoder) ([]plistDict, error) {
	if err := seekTracksDict(dec); err != nil {
		return nil, err
	}

	var tracks []plistDict
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read apple music library: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "dict" {
				track, err := parsePlistDict(dec)
				if err != nil {
					return nil, err
				}
				tracks = append(tracks, track)
				continue
			}
			// Track-id keys and anything unexpected.
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("read apple music library: %w", err)
			}
		case xml.EndElement:
			return tracks, nil
		}
	}
}

// seekTracksDict advances the decoder just past the <dict> opening tag that
// follows the "Tracks" key.
func seekTracksDict(dec *xml.Decoder) error {
	seen := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return errors.New("apple music library has no Tracks section")
		}
		if err != nil {
			return fmt.Errorf("read apple music library: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case start.Name.Local == "key":
			var name string
			if err := dec.DecodeElement(&name, &start); err != nil {
				return fmt.Errorf("read apple music library: %w", err)
			}
			seen = name == "Tracks"
		case seen && start.Name.Local == "dict":
			return nil
		default:
			seen = false
		}
	}
}

// parsePlistDict consumes a <dict> element's children, pairing each <key>
// with the value element that follows it.
func parsePlistDict(dec *xml.Decoder) (plistDict, error) {
	dict := make(plistDict)
	var key string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read apple music track: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "key":
				if err := dec.DecodeElement(&key, &t); err != nil {
					return nil, fmt.Errorf("read apple music track: %w", err)
				}
			case "string", "date", "data":
				var value string
				if err := dec.DecodeElement(&value, &t); err != nil {
					return nil, fmt.Errorf("read apple music track: %w", err)
				}
				dict[key] = value
			case "integer":
				var value string
				if err := dec.DecodeElement(&value, &t); err != nil {
					return nil, fmt.Errorf("read apple music track: %w", err)
				}
				if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
					dict[key] = n
				}
			case "true", "false":
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("read apple music track: %w", err)
				}
				dict[key] = t.Name.Local == "true"
			case "dict":
				nested, err := parsePlistDict(dec)
				if err != nil {
					return nil, err
				}
				dict[key] = nested
			default:
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("read apple music track: %w", err)
				}
			}
		case xml.EndElement:
			return dict, nil
		}
	}
}

func plistString(dict plistDict, key string) string {
	value, _ := dict[key].(string)
	return value
}
