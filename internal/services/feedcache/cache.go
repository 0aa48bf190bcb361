// Package feedcache holds the most recently fetched episode list for each
// feed URL.
//
// Freshness is evaluated lazily when an entry is read. There is no background
// sweep: an expired entry stays in memory until the same key is written again
// or the cache is cleared, which lets the status endpoint report entries whose
// TTL has lapsed.
package feedcache

import (
	"sort"
	"sync"
	"time"

	"github.com/killallgit/rewise-api/internal/models"
)

// DefaultTTL is how long a fetched feed is served from memory.
const DefaultTTL = 10 * time.Minute

// Entry is one cached feed. Entries handed out by the cache are copies.
type Entry struct {
	Key           string
	Podcast       models.PodcastInfo
	Episodes      []models.Episode
	ParsingIssues []string
	CreatedAt     time.Time
}

// EntryOption attaches feed details to an entry being stored.
type EntryOption func(*Entry)

// WithPodcast stores the show information alongside the episodes.
func WithPodcast(podcast models.PodcastInfo) EntryOption {
	return func(e *Entry) {
		e.Podcast = podcast.Clone()
	}
}

// WithParsingIssues stores the non-fatal problems seen while normalizing.
func WithParsingIssues(issues []string) EntryOption {
	return func(e *Entry) {
		if len(issues) > 0 {
			e.ParsingIssues = append([]string(nil), issues...)
		}
	}
}

// EntryStatus describes an entry without exposing its episodes.
type EntryStatus struct {
	Key          string
	EpisodeCount int
	CreatedAt    time.Time
	IsValid      bool
}

// Cache maps feed URLs to their last successful fetch. Keys are used
// verbatim. All methods are safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache
type Option func(*Cache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the lifetime shared by every entry.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns a copy of the entry stored under key, fresh or not. Use IsValid
// to decide whether it may be served.
func (c *Cache) Get(key string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.clone(), true
}

// IsValid reports whether entry is present and younger than the TTL.
func (c *Cache) IsValid(entry *Entry) bool {
	if entry == nil {
		return false
	}
	return c.now().Sub(entry.CreatedAt) < c.ttl
}

// Put replaces whatever is stored under key with episodes stamped with the
// current time, and returns that time.
func (c *Cache) Put(key string, episodes []models.Episode, opts ...EntryOption) time.Time {
	entry := &Entry{
		Key:       key,
		Episodes:  models.CloneEpisodes(episodes),
		CreatedAt: c.now(),
	}
	for _, opt := range opts {
		opt(entry)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	return entry.CreatedAt
}

// Clear removes every entry and returns how many there were.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]*Entry)
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Status snapshots every stored entry, expired ones included, ordered by key.
func (c *Cache) Status() []EntryStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	statuses := make([]EntryStatus, 0, len(c.entries))
	for key, entry := range c.entries {
		statuses = append(statuses, EntryStatus{
			Key:          key,
			EpisodeCount: len(entry.Episodes),
			CreatedAt:    entry.CreatedAt,
			IsValid:      now.Sub(entry.CreatedAt) < c.ttl,
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Key < statuses[j].Key
	})
	return statuses
}

func (e *Entry) clone() *Entry {
	clone := &Entry{
		Key:       e.Key,
		Podcast:   e.Podcast.Clone(),
		Episodes:  models.CloneEpisodes(e.Episodes),
		CreatedAt: e.CreatedAt,
	}
	if e.ParsingIssues != nil {
		clone.ParsingIssues = append([]string(nil), e.ParsingIssues...)
	}
	return clone
}
