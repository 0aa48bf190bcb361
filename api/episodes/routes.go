package episodes

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/rewise-api/api/types"
)

// RegisterRoutes registers episode and feed cache routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /episodes?feedUrl=
	router.GET("", Get(deps))

	// Cache introspection
	router.GET("/cache/clear", ClearCache(deps))
	router.GET("/cache/status", CacheStatus(deps))
}
