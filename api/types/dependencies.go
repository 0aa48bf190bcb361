package types

import (
	"context"

	"github.com/killallgit/rewise-api/internal/models"
	"github.com/killallgit/rewise-api/internal/services/feedcache"
	"github.com/killallgit/rewise-api/internal/services/feeds"
)

// PodcastSearcher looks podcasts up by free-text term
type PodcastSearcher interface {
	Search(ctx context.Context, term string) ([]models.Podcast, error)
}

// EpisodeService returns the normalized episodes of a feed
type EpisodeService interface {
	GetEpisodes(ctx context.Context, feedURL string) (*feeds.Result, error)
}

// Limits caps the size of client input
type Limits struct {
	MaxSearchLength  int
	MaxFeedURLLength int
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Searcher       PodcastSearcher
	EpisodeService EpisodeService
	FeedCache      *feedcache.Cache
	Limits         Limits
	Version        string
}

// SearchLimit returns the configured search term cap, or the default.
func (d *Dependencies) SearchLimit() int {
	if d == nil || d.Limits.MaxSearchLength <= 0 {
		return DefaultMaxSearchLength
	}
	return d.Limits.MaxSearchLength
}

// FeedURLLimit returns the configured feed URL cap, or the default.
func (d *Dependencies) FeedURLLimit() int {
	if d == nil || d.Limits.MaxFeedURLLength <= 0 {
		return DefaultMaxFeedURLLength
	}
	return d.Limits.MaxFeedURLLength
}

// Default input limits
const (
	DefaultMaxSearchLength  = 100
	DefaultMaxFeedURLLength = 500
)
