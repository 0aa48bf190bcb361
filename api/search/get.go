package search

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/killallgit/rewise-api/api/types"
	"github.com/killallgit/rewise-api/internal/models"
	"github.com/killallgit/rewise-api/pkg/input"
)

// logTermLength keeps search terms short in logs
const logTermLength = 20

// Get handles podcast search requests
// @Summary      Search for podcasts
// @Description  Search the iTunes directory for podcasts. Results without a usable feed URL are dropped.
// @Tags         search
// @Produce      json
// @Param        term query string true "Search term" maxlength(100)
// @Success      200 {object} types.SearchResponse "Podcast search results"
// @Failure      400 {object} types.ErrorResponse "Missing, too long or invalid search term"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Failure      502 {object} types.ErrorResponse "iTunes API error"
// @Failure      504 {object} types.ErrorResponse "Request timeout"
// @Router       /search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("term")
		if strings.TrimSpace(term) == "" {
			types.SendBadRequest(c, "Search term is required")
			return
		}

		limit := deps.SearchLimit()
		if utf8.RuneCountInString(term) > limit {
			types.SendBadRequest(c, "Search term is too long")
			return
		}

		sanitized := input.Sanitize(term, limit)
		if sanitized == "" {
			types.SendBadRequest(c, "Invalid search term")
			return
		}

		if deps == nil || deps.Searcher == nil {
			types.SendError(c, http.StatusInternalServerError, "internal_error", "Search service not available")
			return
		}

		logger := log.WithFields(log.Fields{
			"term":      input.Truncate(sanitized, logTermLength),
			"client_ip": c.ClientIP(),
		})
		logger.Info("search request received")

		podcasts, err := deps.Searcher.Search(c.Request.Context(), sanitized)
		if err != nil {
			logger.WithError(err).Warn("search failed")
			types.RespondError(c, err)
			return
		}
		if podcasts == nil {
			podcasts = []models.Podcast{}
		}

		logger.WithField("results", len(podcasts)).Info("search complete")

		c.JSON(http.StatusOK, types.SearchResponse{
			Podcasts:   podcasts,
			Count:      len(podcasts),
			SearchTerm: sanitized,
		})
	}
}
