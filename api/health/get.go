package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/rewise-api/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Report that the server is up
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthResponse{
			Status:  "OK",
			Message: "Server is running",
		})
	}
}
