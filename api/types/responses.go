package types

import "github.com/killallgit/rewise-api/internal/models"

// SearchResponse for GET /search
type SearchResponse struct {
	Podcasts   []models.Podcast `json:"podcasts"`
	Count      int              `json:"count"`
	SearchTerm string           `json:"searchTerm"`
}

// EpisodesResponse for GET /episodes
type EpisodesResponse struct {
	Podcast        models.PodcastInfo `json:"podcast"`
	Episodes       []models.Episode   `json:"episodes"`
	Count          int                `json:"count"`
	FeedURL        string             `json:"feedUrl"`
	Cached         bool               `json:"cached"`
	CacheTimestamp int64              `json:"cacheTimestamp"` // Unix seconds
	ParsingIssues  []string           `json:"parsingIssues,omitempty"`
}

// CacheClearResponse for GET /episodes/cache/clear
type CacheClearResponse struct {
	Message        string `json:"message"`
	ClearedEntries int    `json:"clearedEntries"`
}

// CacheEntryStatus describes one cached feed
type CacheEntryStatus struct {
	URL          string `json:"url"`
	EpisodeCount int    `json:"episodeCount"`
	Timestamp    int64  `json:"timestamp"` // Unix seconds
	IsValid      bool   `json:"isValid"`
}

// CacheStatusResponse for GET /episodes/cache/status
type CacheStatusResponse struct {
	CacheSize int                `json:"cacheSize"`
	Entries   []CacheEntryStatus `json:"entries"`
}

// HealthResponse for GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RootResponse for GET /
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NotFoundResponse is returned for unmatched routes
type NotFoundResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}
