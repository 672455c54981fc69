package catalog

import (
	"fmt"
	"strings"
)

// Source identifies where an imported record came from.
type Source string

const (
	SourceAppleMusic    Source = "apple_music"
	SourceSpotify       Source = "spotify"
	SourceQobuz         Source = "qobuz"
	SourceSteam         Source = "steam"
	SourceGoodreads     Source = "goodreads"
	SourceKindle        Source = "kindle"
	SourceNetflix       Source = "netflix"
	SourceAppleTV       Source = "apple_tv"
	SourceAmazonPrime   Source = "amazon_prime"
	SourceDisneyPlus    Source = "disney_plus"
	SourceBBCiPlayer    Source = "bbc_iplayer"
	SourceApplePodcasts Source = "apple_podcasts"
	SourceArxiv         Source = "arxiv"
	SourceManual        Source = "manual"
)

var allSources = []Source{
	SourceAppleMusic,
	SourceSpotify,
	SourceQobuz,
	SourceSteam,
	SourceGoodreads,
	SourceKindle,
	SourceNetflix,
	SourceAppleTV,
	SourceAmazonPrime,
	SourceDisneyPlus,
	SourceBBCiPlayer,
	SourceApplePodcasts,
	SourceArxiv,
	SourceManual,
}

var sourceSet = func() map[Source]struct{} {
	set := make(map[Source]struct{}, len(allSources))
	for _, source := range allSources {
		set[source] = struct{}{}
	}
	return set
}()

// Sources returns every known source.
func Sources() []Source {
	out := make([]Source, len(allSources))
	copy(out, allSources)
	return out
}

// Valid reports whether the source is one of the known values.
func (s Source) Valid() bool {
	_, ok := sourceSet[s]
	return ok
}

// String returns the source's storage value.
func (s Source) String() string { return string(s) }

// ParseSource converts user or importer input into a Source.
func ParseSource(value string) (Source, error) {
	source := Source(strings.ToLower(strings.TrimSpace(value)))
	if !source.Valid() {
		return "", fmt.Errorf("unknown source %q", value)
	}
	return source, nil
}
