package episodes

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/rewise-api/api/types"
)

// Get returns the latest episodes of a podcast feed
// @Summary      Get episodes by feed URL
// @Description  Fetch and normalize up to 20 episodes from an RSS feed, with show information and optional episode metadata. Results are cached per feed URL for 10 minutes.
// @Tags         episodes
// @Produce      json
// @Param        feedUrl query string true "RSS feed URL of the podcast" format(url) maxlength(500)
// @Success      200 {object} types.EpisodesResponse "Normalized episodes"
// @Failure      400 {object} types.ErrorResponse "Missing or invalid feed URL, or unparsable feed"
// @Failure      404 {object} types.ErrorResponse "Feed not found or host unreachable"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} types.ErrorResponse "Error fetching episodes"
// @Failure      504 {object} types.ErrorResponse "Request timeout"
// @Router       /episodes [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		feedURL := c.Query("feedUrl")
		if strings.TrimSpace(feedURL) == "" {
			types.SendBadRequest(c, "Feed URL is required")
			return
		}
		if utf8.RuneCountInString(feedURL) > deps.FeedURLLimit() {
			types.SendBadRequest(c, "Feed URL is too long")
			return
		}

		if deps == nil || deps.EpisodeService == nil {
			types.SendError(c, http.StatusInternalServerError, "internal_error", "Episode service not available")
			return
		}

		result, err := deps.EpisodeService.GetEpisodes(c.Request.Context(), feedURL)
		if err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.EpisodesResponse{
			Podcast:        result.Podcast,
			Episodes:       result.Episodes,
			Count:          len(result.Episodes),
			FeedURL:        feedURL,
			Cached:         result.Cached,
			CacheTimestamp: result.CacheTimestamp.Unix(),
			ParsingIssues:  result.ParsingIssues,
		})
	}
}
