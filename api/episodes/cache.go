package episodes

import (
	"net/http"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/killallgit/rewise-api/api/types"
	"github.com/killallgit/rewise-api/pkg/input"
)

// statusURLLength is where cache status URLs get abbreviated
const statusURLLength = 50

// ClearCache drops every cached feed
// @Summary      Clear the feed cache
// @Description  Remove every cached feed and report how many entries were dropped
// @Tags         cache
// @Produce      json
// @Success      200 {object} types.CacheClearResponse "Cache cleared"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Router       /episodes/cache/clear [get]
func ClearCache(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.FeedCache == nil {
			types.SendError(c, http.StatusInternalServerError, "internal_error", "Cache not available")
			return
		}

		cleared := deps.FeedCache.Clear()
		log.WithFields(log.Fields{
			"cleared":   cleared,
			"client_ip": c.ClientIP(),
		}).Info("feed cache cleared")

		c.JSON(http.StatusOK, types.CacheClearResponse{
			Message:        "Cache cleared successfully",
			ClearedEntries: cleared,
		})
	}
}

// CacheStatus lists cached feeds and whether each is still fresh
// @Summary      Feed cache status
// @Description  List cached feeds with their episode count, fetch time and freshness. Long URLs are abbreviated.
// @Tags         cache
// @Produce      json
// @Success      200 {object} types.CacheStatusResponse "Cache status"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Router       /episodes/cache/status [get]
func CacheStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.FeedCache == nil {
			types.SendError(c, http.StatusInternalServerError, "internal_error", "Cache not available")
			return
		}

		statuses := deps.FeedCache.Status()
		entries := make([]types.CacheEntryStatus, 0, len(statuses))
		for _, status := range statuses {
			log.WithFields(log.Fields{
				"episodes": status.EpisodeCount,
				"age":      humanize.Time(status.CreatedAt),
				"valid":    status.IsValid,
			}).Debug("cache entry")

			entries = append(entries, types.CacheEntryStatus{
				URL:          input.Abbreviate(status.Key, statusURLLength),
				EpisodeCount: status.EpisodeCount,
				Timestamp:    status.CreatedAt.Unix(),
				IsValid:      status.IsValid,
			})
		}

		c.JSON(http.StatusOK, types.CacheStatusResponse{
			CacheSize: len(entries),
			Entries:   entries,
		})
	}
}
