package feeds

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/killallgit/rewise-api/internal/apperr"
	"github.com/killallgit/rewise-api/internal/models"
	"github.com/killallgit/rewise-api/internal/services/feedcache"
	"github.com/killallgit/rewise-api/pkg/input"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/singleflight"
)

// FeedSource retrieves and parses a feed
type FeedSource interface {
	Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error)
}

// Result is the outcome of an episode lookup
type Result struct {
	Podcast        models.PodcastInfo
	Episodes       []models.Episode
	ParsingIssues  []string
	Cached         bool
	CacheTimestamp time.Time
}

// Service serves feed episodes, consulting the cache before fetching.
type Service struct {
	source      FeedSource
	cache       *feedcache.Cache
	maxEpisodes int
	coalesce    bool
	group       singleflight.Group
}

// Option configures a Service
type Option func(*Service)

// WithMaxEpisodes caps how many items are kept per feed (at most MaxEpisodes).
func WithMaxEpisodes(n int) Option {
	return func(s *Service) {
		if n > 0 && n <= MaxEpisodes {
			s.maxEpisodes = n
		}
	}
}

// WithCoalescing makes concurrent misses for the same feed share one fetch.
// Without it each miss fetches on its own and the last write wins.
func WithCoalescing(enabled bool) Option {
	return func(s *Service) {
		s.coalesce = enabled
	}
}

// NewService creates a new feed service
func NewService(source FeedSource, cache *feedcache.Cache, opts ...Option) *Service {
	s := &Service{
		source:      source,
		cache:       cache,
		maxEpisodes: MaxEpisodes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetEpisodes returns the normalized episodes of feedURL, from cache when a
// fresh entry exists. feedURL is validated before any network activity.
func (s *Service) GetEpisodes(ctx context.Context, feedURL string) (*Result, error) {
	if !input.ValidURL(feedURL) {
		return nil, apperr.NewValidationError("feedUrl", "Invalid URL format")
	}

	logger := log.WithField("feed_host", hostOf(feedURL))

	if entry, ok := s.cache.Get(feedURL); ok && s.cache.IsValid(entry) {
		logger.WithFields(log.Fields{
			"episodes": len(entry.Episodes),
			"age":      humanize.Time(entry.CreatedAt),
		}).Info("returning cached episodes")
		return &Result{
			Podcast:        entry.Podcast,
			Episodes:       entry.Episodes,
			ParsingIssues:  entry.ParsingIssues,
			Cached:         true,
			CacheTimestamp: entry.CreatedAt,
		}, nil
	}

	if !s.coalesce {
		return s.fetchAndStore(ctx, feedURL, logger)
	}
	return s.sharedFetch(ctx, feedURL, logger)
}

// sharedFetch joins the in-flight fetch for feedURL or starts one. The fetch
// itself is detached from any single caller's cancellation and is bounded by
// the fetcher timeout; each caller still stops waiting when its own ctx ends.
func (s *Service) sharedFetch(ctx context.Context, feedURL string, logger *log.Entry) (*Result, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(feedURL, func() (interface{}, error) {
		return s.fetchAndStore(fetchCtx, feedURL, logger)
	})

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperr.Timeout("Request timeout", ctx.Err())
		}
		return nil, fmt.Errorf("wait for feed fetch: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug("shared in-flight feed fetch")
		}
		result := *res.Val.(*Result)
		result.Podcast = result.Podcast.Clone()
		result.Episodes = models.CloneEpisodes(result.Episodes)
		if result.ParsingIssues != nil {
			result.ParsingIssues = append([]string(nil), result.ParsingIssues...)
		}
		return &result, nil
	}
}

func (s *Service) fetchAndStore(ctx context.Context, feedURL string, logger *log.Entry) (*Result, error) {
	logger.Info("fetching fresh episodes")

	feed, err := s.source.Fetch(ctx, feedURL)
	if err != nil {
		logger.WithError(err).Error("episodes fetch failed")
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	if feed == nil || len(feed.Items) == 0 {
		logger.Warn("feed has no items")
		return nil, apperr.BadFeed("No episodes found in RSS feed", nil)
	}

	normalized := NormalizeFeed(feed, s.maxEpisodes)
	createdAt := s.cache.Put(feedURL, normalized.Episodes,
		feedcache.WithPodcast(normalized.Podcast),
		feedcache.WithParsingIssues(normalized.Issues),
	)

	logger.WithFields(log.Fields{
		"items":    len(feed.Items),
		"episodes": len(normalized.Episodes),
		"issues":   len(normalized.Issues),
	}).Info("cached fresh episodes")

	return &Result{
		Podcast:        normalized.Podcast,
		Episodes:       normalized.Episodes,
		ParsingIssues:  normalized.Issues,
		Cached:         false,
		CacheTimestamp: createdAt,
	}, nil
}

// hostOf keeps full feed URLs out of the logs.
func hostOf(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil {
		return ""
	}
	return u.Host
}
