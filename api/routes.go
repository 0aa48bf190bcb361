package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/rewise-api/api/episodes"
	"github.com/killallgit/rewise-api/api/health"
	"github.com/killallgit/rewise-api/api/search"
	"github.com/killallgit/rewise-api/api/types"
	"github.com/killallgit/rewise-api/api/version"
	_ "github.com/killallgit/rewise-api/docs/swagger"
)

// RegisterRoutes registers all API routes. limit guards the search,
// episodes and cache routes; pass nil to leave them unlimited.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, limit gin.HandlerFunc) {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	searchGroup := engine.Group("/search")
	episodesGroup := engine.Group("/episodes")
	if limit != nil {
		searchGroup.Use(limit)
		episodesGroup.Use(limit)
	}
	search.RegisterRoutes(searchGroup, deps)
	episodes.RegisterRoutes(episodesGroup, deps)
}
