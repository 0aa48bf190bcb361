package itunes

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/killallgit/rewise-api/internal/apperr"
	"github.com/killallgit/rewise-api/internal/models"
	"github.com/killallgit/rewise-api/pkg/input"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public iTunes Search API
	DefaultBaseURL = "https://itunes.apple.com"
	// DefaultUserAgent identifies the proxy to upstream services
	DefaultUserAgent = "ReWise-Backend/1.0.0"

	maxResponseBytes = 5 << 20
)

// Config holds configuration for the iTunes client
type Config struct {
	// Rate limiting
	RequestsPerMinute int // Default: 250 (safe under 300)
	BurstSize         int // Default: 5

	// HTTP configuration
	Timeout   time.Duration // Default: 10s
	UserAgent string

	// Base URL (for testing)
	BaseURL string // Default: https://itunes.apple.com
}

// Client handles communication with the iTunes Search API
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
	metrics     *clientMetrics
}

// clientMetrics tracks client usage statistics
type clientMetrics struct {
	requests atomic.Int64
	errors   atomic.Int64
	dropped  atomic.Int64
}

// NewClient creates a new iTunes API client
func NewClient(cfg Config) *Client {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 250
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	limiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
		cfg.BurstSize,
	)

	return &Client{
		httpClient:  &http.Client{},
		rateLimiter: limiter,
		config:      cfg,
		metrics:     &clientMetrics{},
	}
}

// Search asks iTunes for podcasts matching term and returns the usable ones.
// A response without a "results" array is treated as no matches.
func (c *Client) Search(ctx context.Context, term string) ([]models.Podcast, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.NewValidationError("term", "Search term is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("term", term)
	params.Set("entity", "podcast")
	searchURL := fmt.Sprintf("%s/search?%s", c.config.BaseURL, params.Encode())

	body, err := c.doRequest(ctx, searchURL)
	if err != nil {
		c.metrics.errors.Add(1)
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		c.metrics.errors.Add(1)
		return nil, apperr.Internal("Internal server error", errors.New("itunes returned invalid json"))
	}

	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return []models.Podcast{}, nil
	}

	podcasts := make([]models.Podcast, 0, len(results.Array()))
	results.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			c.metrics.dropped.Add(1)
			return true
		}
		var result searchResult
		if err := json.Unmarshal([]byte(value.Raw), &result); err != nil {
			c.metrics.dropped.Add(1)
			return true
		}
		if podcast, ok := transformToPodcast(&result); ok {
			podcasts = append(podcasts, podcast)
		} else {
			c.metrics.dropped.Add(1)
		}
		return true
	})

	log.WithFields(log.Fields{
		"term":    input.Truncate(term, 20),
		"results": len(podcasts),
	}).Debug("itunes search complete")

	return podcasts, nil
}

// doRequest performs a single GET and returns the (decompressed) body.
func (c *Client) doRequest(ctx context.Context, target string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		// Wait gives up early, before ctx expires, when the next token would
		// only arrive after the deadline.
		if _, hasDeadline := ctx.Deadline(); !errors.Is(ctx.Err(), context.Canceled) && (hasDeadline || apperr.IsTimeout(err)) {
			return nil, apperr.Timeout("Request timeout", fmt.Errorf("rate limiter wait: %w", err))
		}
		return nil, apperr.Internal("Internal server error", fmt.Errorf("rate limiter wait: %w", err))
	}

	c.metrics.requests.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperr.Internal("Internal server error", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if apperr.IsTimeout(err) {
			return nil, apperr.Timeout("Request timeout", err)
		}
		return nil, apperr.Internal("Internal server error", fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Error("itunes api error")
		return nil, apperr.Upstream("iTunes API error", apperr.NewUpstreamError("itunes search", resp.StatusCode))
	}

	var reader io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, apperr.Internal("Internal server error", fmt.Errorf("create gzip reader: %w", err))
		}
		defer gzReader.Close()
		reader = gzReader
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxResponseBytes))
	if err != nil {
		if apperr.IsTimeout(err) {
			return nil, apperr.Timeout("Request timeout", err)
		}
		return nil, apperr.Internal("Internal server error", fmt.Errorf("read response: %w", err))
	}
	return body, nil
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() map[string]int64 {
	return map[string]int64{
		"requests": c.metrics.requests.Load(),
		"errors":   c.metrics.errors.Load(),
		"dropped":  c.metrics.dropped.Load(),
	}
}
