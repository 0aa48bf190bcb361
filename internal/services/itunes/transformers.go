package itunes

import (
	"strings"

	"github.com/killallgit/rewise-api/internal/models"
	"github.com/killallgit/rewise-api/pkg/input"
)

const (
	maxNameLength = 200
	unknown       = "Unknown"
)

// transformToPodcast converts an iTunes search result to our Podcast model.
// Results without a usable feed URL are rejected.
func transformToPodcast(result *searchResult) (models.Podcast, bool) {
	if result == nil {
		return models.Podcast{}, false
	}

	feedURL := strings.TrimSpace(result.FeedURL)
	if !input.ValidURL(feedURL) {
		return models.Podcast{}, false
	}

	return models.Podcast{
		PodcastName: orUnknown(input.Sanitize(result.CollectionName, maxNameLength)),
		FeedURL:     feedURL,
		Artwork:     artwork(result),
		ArtistName:  orUnknown(input.Sanitize(result.ArtistName, maxNameLength)),
	}, true
}

// artwork prefers the 600px image, then the 100px one.
func artwork(result *searchResult) *string {
	for _, candidate := range []string{result.ArtworkURL600, result.ArtworkURL100} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return &trimmed
		}
	}
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
