package importers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"discovery/internal/catalog"
)

func TestLookup(t *testing.T) {
	imp, err := Lookup("Spotify")
	require.NoError(t, err)
	require.Equal(t, catalog.SourceSpotify, imp.Source())

	imp, err = Lookup("apple_music")
	require.NoError(t, err)
	require.Equal(t, catalog.SourceAppleMusic, imp.Source())

	_, err = Lookup("myspace")
	require.Error(t, err)

	require.Equal(t, []string{"apple-music", "goodreads", "netflix", "qobuz", "spotify", "steam"}, Names())
}

func TestSpotifyLibrary(t *testing.T) {
	payload := `{
        "tracks": [
            {"artist": "Daft Punk", "album": "Random Access Memories", "track": "Get Lucky"},
            {"artist": "Radiohead", "album": "OK Computer", "track": "Paranoid Android"},
            {"artist": "Nobody", "album": "", "track": ""}
        ]
    }`

	records, err := spotifyImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	require.Equal(t, catalog.CategoryMusic, first.Category)
	require.Equal(t, "Get Lucky", first.Title)
	require.Equal(t, "Daft Punk", first.Creator)
	require.Equal(t, "Daft Punk:Get Lucky", first.ExternalID)
	require.NotNil(t, first.Loved)
	require.True(t, *first.Loved)
}

func TestSpotifyStreamingHistory(t *testing.T) {
	payload := `[
        {"ts": "2024-01-01T10:00:00Z", "master_metadata_album_artist_name": "Daft Punk", "master_metadata_track_name": "One More Time", "ms_played": 300000},
        {"ts": "2024-01-02T10:00:00Z", "master_metadata_album_artist_name": "Daft Punk", "master_metadata_track_name": "One More Time", "ms_played": 300000},
        {"ts": "2024-01-03T10:00:00Z", "master_metadata_album_artist_name": "Radiohead", "master_metadata_track_name": "Creep", "ms_played": 60000},
        {"ts": "2024-01-04T10:00:00Z", "master_metadata_album_artist_name": "", "master_metadata_track_name": "Orphan", "ms_played": 1000}
    ]`

	records, err := spotifyImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ten minutes of play time across two events crosses the loved bar.
	require.Equal(t, "One More Time", records[0].Title)
	require.NotNil(t, records[0].Loved)
	require.True(t, *records[0].Loved)

	// One short play stays neutral.
	require.Equal(t, "Creep", records[1].Title)
	require.Nil(t, records[1].Loved)
}

func TestSpotifyRejectsUnknownLayout(t *testing.T) {
	_, err := spotifyImporter{}.Parse(strings.NewReader(`{"playlists": []}`))
	require.Error(t, err)
}

func TestAppleMusicLibraryXML(t *testing.T) {
	payload := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Tracks</key>
	<dict>
		<key>1001</key>
		<dict>
			<key>Track ID</key><integer>1001</integer>
			<key>Name</key><string>Harvest Moon</string>
			<key>Artist</key><string>Neil Young</string>
			<key>Kind</key><string>AAC audio file</string>
			<key>Loved</key><true/>
			<key>Play Count</key><integer>42</integer>
		</dict>
		<key>1002</key>
		<dict>
			<key>Track ID</key><integer>1002</integer>
			<key>Name</key><string>Some Show</string>
			<key>Kind</key><string>Podcast audio file</string>
		</dict>
		<key>1003</key>
		<dict>
			<key>Track ID</key><integer>1003</integer>
			<key>Name</key><string>Heart of Gold</string>
			<key>Artist</key><string>Neil Young</string>
			<key>Kind</key><string>AAC audio file</string>
			<key>Loved</key><false/>
		</dict>
	</dict>
</dict>
</plist>`

	records, err := appleMusicImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	harvest := records[0]
	require.Equal(t, catalog.CategoryMusic, harvest.Category)
	require.Equal(t, "Harvest Moon", harvest.Title)
	require.Equal(t, "Neil Young", harvest.Creator)
	require.Equal(t, "1001", harvest.ExternalID)
	require.NotNil(t, harvest.Loved)
	require.True(t, *harvest.Loved)

	// An unloved track stays neutral rather than recording a dislike.
	require.Equal(t, "Heart of Gold", records[1].Title)
	require.Nil(t, records[1].Loved)
}

func TestAppleMusicMissingTracks(t *testing.T) {
	payload := `<plist version="1.0"><dict><key>Major Version</key><integer>1</integer></dict></plist>`
	_, err := appleMusicImporter{}.Parse(strings.NewReader(payload))
	require.Error(t, err)
}

func TestQobuzCSV(t *testing.T) {
	payload := `title,artist,album
Time,Pink Floyd,The Dark Side of the Moon
Comfortably Numb,Pink Floyd,The Wall
,Nobody,Empty
`

	records, err := qobuzImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	require.Equal(t, catalog.CategoryMusic, first.Category)
	require.Equal(t, "Time", first.Title)
	require.Equal(t, "Pink Floyd", first.Creator)
	require.Equal(t, "Pink Floyd:Time", first.ExternalID)
	require.NotNil(t, first.Loved)
	require.True(t, *first.Loved)
}

func TestQobuzJSONShapes(t *testing.T) {
	// Soundiiz-style wrapper with plain string artists.
	records, err := qobuzImporter{}.Parse(strings.NewReader(`{"tracks": [{"title": "Time", "artist": "Pink Floyd"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Pink Floyd", records[0].Creator)

	// Browser-state dump: top-level array, performer objects.
	records, err = qobuzImporter{}.Parse(strings.NewReader(`[{"name": "Echoes", "performer": {"name": "Pink Floyd"}}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Echoes", records[0].Title)
	require.Equal(t, "Pink Floyd", records[0].Creator)
}

func TestQobuzRejectsUnknownLayout(t *testing.T) {
	_, err := qobuzImporter{}.Parse(strings.NewReader(`{"playlists": []}`))
	require.Error(t, err)
}

func TestGoodreadsCSV(t *testing.T) {
	payload := `Book Id,Title,Author,My Rating,Exclusive Shelf
12345,Project Hail Mary,Andy Weir,5,read
67890,Dune,Frank Herbert,0,to-read
,  ,Nobody,3,read
`

	records, err := goodreadsImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	phm := records[0]
	require.Equal(t, catalog.CategoryBook, phm.Category)
	require.Equal(t, "Project Hail Mary", phm.Title)
	require.Equal(t, "Andy Weir", phm.Creator)
	require.Equal(t, "12345", phm.ExternalID)
	require.Equal(t, 5, phm.Stars)
	require.NotNil(t, phm.Loved)
	require.True(t, *phm.Loved)

	// An unrated book carries no stars and no loved flag.
	dune := records[1]
	require.Equal(t, 0, dune.Stars)
	require.Nil(t, dune.Loved)
}

func TestGoodreadsMissingTitleColumn(t *testing.T) {
	_, err := goodreadsImporter{}.Parse(strings.NewReader("Book Id,Author\n1,Someone\n"))
	require.Error(t, err)
}

func TestNetflixViewingActivity(t *testing.T) {
	payload := `Title,Start Time,Duration
Stranger Things: Season 4: Chapter One,2024-01-01 20:00,0:50
Stranger Things: Season 4: Chapter Two,2024-01-02 20:00,0:48
Arrival,2024-01-03 21:00,1:56
Arrival,2024-02-10 21:00,1:56
`

	records, err := netflixImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	show := records[0]
	require.Equal(t, catalog.CategoryTV, show.Category)
	require.Equal(t, "Stranger Things", show.Title)
	require.Empty(t, show.Creator)
	require.Empty(t, show.ExternalID)

	movie := records[1]
	require.Equal(t, catalog.CategoryMovie, movie.Category)
	require.Equal(t, "Arrival", movie.Title)
}

func TestNetflixRatings(t *testing.T) {
	payload := `Title,Rating
The Midnight Sky,thumbs down
Arrival,two thumbs up
Dark: Season 1: Secrets,thumbs up
`

	records, err := netflixImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, 1, records[0].Stars)
	require.NotNil(t, records[0].Loved)
	require.False(t, *records[0].Loved)

	require.Equal(t, 5, records[1].Stars)
	require.True(t, *records[1].Loved)

	require.Equal(t, catalog.CategoryTV, records[2].Category)
	require.Equal(t, "Dark", records[2].Title)
	require.Equal(t, 4, records[2].Stars)
}

func TestSteamOwnedGames(t *testing.T) {
	payload := `{
        "response": {
            "game_count": 3,
            "games": [
                {"appid": 753640, "name": "Outer Wilds", "playtime_forever": 1800},
                {"appid": 400, "name": "Portal", "playtime_forever": 120},
                {"appid": 999, "name": "", "playtime_forever": 0}
            ]
        }
    }`

	records, err := steamImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	outerWilds := records[0]
	require.Equal(t, catalog.CategoryGame, outerWilds.Category)
	require.Equal(t, "Outer Wilds", outerWilds.Title)
	require.Equal(t, "753640", outerWilds.ExternalID)
	require.NotNil(t, outerWilds.Loved)
	require.True(t, *outerWilds.Loved)

	require.Nil(t, records[1].Loved)
}

func TestGroupByCategory(t *testing.T) {
	payload := `Title
Dark: Season 1: Secrets
Arrival
Dark: Season 2: Beginnings and Endings
The Midnight Sky
`
	records, err := netflixImporter{}.Parse(strings.NewReader(payload))
	require.NoError(t, err)

	batches := GroupByCategory(records)
	require.Len(t, batches, 2)
	require.Equal(t, catalog.CategoryTV, batches[0].Category)
	require.Len(t, batches[0].Records, 1)
	require.Equal(t, catalog.CategoryMovie, batches[1].Category)
	require.Len(t, batches[1].Records, 2)
}
