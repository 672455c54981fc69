package importers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"discovery/internal/catalog"
	"discovery/internal/recon"
)

// spotifyImporter reads Spotify data exports. Two layouts are recognized:
// YourLibrary.json ({"tracks": [...]}) and Streaming_History_Audio_*.json
// (a top-level array of play events).
type spotifyImporter struct{}

func (spotifyImporter) Source() catalog.Source { return catalog.SourceSpotify }

type spotifyLibrary struct {
	Tracks []spotifyTrack `json:"tracks"`
}

type spotifyTrack struct {
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Track  string `json:"track"`
}

type spotifyPlayEvent struct {
	Timestamp string `json:"ts"`
	Artist    string `json:"master_metadata_album_artist_name"`
	Track     string `json:"master_metadata_track_name"`
	MsPlayed  int64  `json:"ms_played"`
}

// Plays below both limits stay neutral; at or above either the track counts
// as loved.
const (
	spotifyLovedPlayCount = 5
	spotifyLovedMinutes   = 10
)

func (imp spotifyImporter) Parse(r io.Reader) ([]recon.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read spotify export: %w", err)
	}

	var library spotifyLibrary
	if err := json.Unmarshal(raw, &library); err == nil && library.Tracks != nil {
		return imp.parseLibrary(library), nil
	}

	var history []spotifyPlayEvent
	if err := json.Unmarshal(raw, &history); err == nil {
		return imp.parseHistory(history), nil
	}

	return nil, fmt.Errorf("unrecognized spotify export layout")
}

func (spotifyImporter) parseLibrary(library spotifyLibrary) []recon.Record {
	loved := true
	records := make([]recon.Record, 0, len(library.Tracks))
	for _, track := range library.Tracks {
		title := strings.TrimSpace(track.Track)
		if title == "" {
			continue
		}
		rec := recon.Record{
			Category:   catalog.CategoryMusic,
			Title:      title,
			Creator:    strings.TrimSpace(track.Artist),
			Source:     catalog.SourceSpotify,
			ExternalID: track.Artist + ":" + title,
			// Saved to the library means liked.
			Loved: &loved,
		}
		records = append(records, rec)
	}
	return records
}

func (spotifyImporter) parseHistory(history []spotifyPlayEvent) []recon.Record {
	type playStats struct {
		count    int
		msPlayed int64
	}
	order := make([]string, 0, len(history))
	stats := make(map[string]*playStats)

	for _, event := range history {
		title := strings.TrimSpace(event.Track)
		artist := strings.TrimSpace(event.Artist)
		if title == "" || artist == "" {
			continue
		}
		key := artist + ":" + title
		entry, ok := stats[key]
		if !ok {
			entry = &playStats{}
			stats[key] = entry
			order = append(order, key)
		}
		entry.count++
		entry.msPlayed += event.MsPlayed
	}

	records := make([]recon.Record, 0, len(order))
	for _, key := range order {
		entry := stats[key]
		artist, title, _ := strings.Cut(key, ":")

		rec := recon.Record{
			Category:   catalog.CategoryMusic,
			Title:      title,
			Creator:    artist,
			Source:     catalog.SourceSpotify,
			ExternalID: key,
		}
		minutes := float64(entry.msPlayed) / 60000
		if entry.count >= spotifyLovedPlayCount || minutes >= spotifyLovedMinutes {
			loved := true
			rec.Loved = &loved
		}
		records = append(records, rec)
	}
	return records
}
