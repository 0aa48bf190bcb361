package episodes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/rewise-api/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearCache_AfterTwoFeeds(t *testing.T) {
	f := newFixture(t, nil)

	require.Equal(t, http.StatusOK, f.get(t, episodesPath("https://feeds.example.com/one.xml")).Code)
	require.Equal(t, http.StatusOK, f.get(t, episodesPath("https://feeds.example.com/two.xml")).Code)

	w := f.get(t, "/episodes/cache/clear")
	require.Equal(t, http.StatusOK, w.Code)

	var cleared types.CacheClearResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cleared))
	assert.Equal(t, "Cache cleared successfully", cleared.Message)
	assert.Equal(t, 2, cleared.ClearedEntries)

	w = f.get(t, "/episodes/cache/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status types.CacheStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, 0, status.CacheSize)
	assert.Empty(t, status.Entries)
	assert.Contains(t, w.Body.String(), `"entries":[]`)
}

func TestCacheStatus(t *testing.T) {
	f := newFixture(t, nil)
	longURL := "https://feeds.example.com/" + strings.Repeat("x", 60) + ".xml"
	shortURL := "https://a.example.com/feed.xml"

	require.Equal(t, http.StatusOK, f.get(t, episodesPath(longURL)).Code)
	createdAt := f.clock.Now()
	f.clock.Advance(11 * time.Minute)
	require.Equal(t, http.StatusOK, f.get(t, episodesPath(shortURL)).Code)

	w := f.get(t, "/episodes/cache/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status types.CacheStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.Equal(t, 2, status.CacheSize)
	require.Len(t, status.Entries, 2)

	byURL := map[string]types.CacheEntryStatus{}
	for _, entry := range status.Entries {
		byURL[entry.URL] = entry
	}

	abbreviated := longURL[:50] + "..."
	require.Contains(t, byURL, abbreviated)
	stale := byURL[abbreviated]
	assert.False(t, stale.IsValid)
	assert.Equal(t, 3, stale.EpisodeCount)
	assert.Equal(t, createdAt.Unix(), stale.Timestamp)

	require.Contains(t, byURL, shortURL)
	assert.True(t, byURL[shortURL].IsValid)

	// reading status twice changes nothing
	again := f.get(t, "/episodes/cache/status")
	assert.JSONEq(t, w.Body.String(), again.Body.String())
}

func TestCacheHandlers_NoCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/episodes"), &types.Dependencies{})

	for _, target := range []string{"/episodes/cache/clear", "/episodes/cache/status"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code, target)
	}
}
