package feeds

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/killallgit/rewise-api/internal/apperr"
	"github.com/mmcdole/gofeed"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "ReWise-Backend/1.0.0"

	// maxFeedBytes bounds how much of a response body is handed to the parser.
	maxFeedBytes = 20 << 20
)

// FetcherConfig holds settings for outbound feed requests
type FetcherConfig struct {
	Timeout   time.Duration // Default: 10s
	UserAgent string        // Default: ReWise-Backend/1.0.0
}

// Fetcher downloads and parses RSS/Atom feeds.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// NewFetcher creates a new Fetcher
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
	}
}

// Fetch retrieves feedURL and parses it. Errors are classified with apperr:
// timeouts, unreachable hosts and 404s, unparsable bodies, and everything else.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, apperr.Internal("Error fetching episodes", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, apperr.NotFound("Feed not found", fmt.Errorf("feed returned status %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, apperr.Internal("Error fetching episodes", fmt.Errorf("feed returned status %d", resp.StatusCode))
	}

	// The body is read in full before parsing so a deadline that fires mid
	// transfer surfaces as a read error rather than a parse error.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperr.Timeout("Request timeout", err)
		}
		return nil, classifyTransportError(err)
	}

	// gofeed parsers keep per-document state, so each fetch gets its own.
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		log.WithError(err).Warn("feed body could not be parsed")
		return nil, apperr.BadFeed("Invalid RSS feed format", fmt.Errorf("parse feed: %w", err))
	}

	return feed, nil
}

func classifyTransportError(err error) error {
	switch {
	case apperr.IsTimeout(err):
		return apperr.Timeout("Request timeout", err)
	case apperr.IsUnreachable(err):
		return apperr.NotFound("Feed host unreachable", err)
	default:
		return apperr.Internal("Error fetching episodes", fmt.Errorf("http request: %w", err))
	}
}
