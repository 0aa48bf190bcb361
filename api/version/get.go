package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/rewise-api/api/types"
)

// DefaultVersion is reported when no build version was injected
const DefaultVersion = "1.0.0"

// Get handles root banner requests
// @Summary      Service banner
// @Description  Confirm the backend is running and report its version
// @Tags         version
// @Produce      json
// @Success      200 {object} types.RootResponse
// @Router       / [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	version := DefaultVersion
	if deps != nil && deps.Version != "" {
		version = deps.Version
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.RootResponse{
			Message: "ReWise backend is running",
			Version: version,
		})
	}
}
