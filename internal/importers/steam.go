package importers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"discovery/internal/catalog"
	"discovery/internal/recon"
)

// steamImporter reads the GetOwnedGames JSON payload saved from the Steam Web
// API ({"response": {"games": [...]}}).
type steamImporter struct{}

func (steamImporter) Source() catalog.Source { return catalog.SourceSteam }

type steamExport struct {
	Response struct {
		Games []steamGame `json:"games"`
	} `json:"response"`
}

type steamGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int64  `json:"playtime_forever"`
}

// Ten hours of playtime marks a game as loved.
const steamLovedMinutes = 600

func (steamImporter) Parse(r io.Reader) ([]recon.Record, error) {
	var export steamExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decode steam export: %w", err)
	}

	records := make([]recon.Record, 0, len(export.Response.Games))
	for _, game := range export.Response.Games {
		title := strings.TrimSpace(game.Name)
		if title == "" {
			continue
		}
		rec := recon.Record{
			Category:   catalog.CategoryGame,
			Title:      title,
			Source:     catalog.SourceSteam,
			ExternalID: strconv.FormatInt(game.AppID, 10),
		}
		if game.PlaytimeForever >= steamLovedMinutes {
			loved := true
			rec.Loved = &loved
		}
		records = append(records, rec)
	}
	return records, nil
}
