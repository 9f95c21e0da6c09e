package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/video-hunter/api/download"
	"github.com/killallgit/video-hunter/api/health"
	"github.com/killallgit/video-hunter/api/home"
	"github.com/killallgit/video-hunter/api/search"
	"github.com/killallgit/video-hunter/api/types"
	"github.com/killallgit/video-hunter/api/version"
	_ "github.com/killallgit/video-hunter/docs/swagger"
	"github.com/killallgit/video-hunter/pkg/config"
	apperrors "github.com/killallgit/video-hunter/pkg/errors"
)

// RegisterRoutes registers all routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, cfg *config.Config, limiter *RateLimiter) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register public routes (no rate limiting)
	home.RegisterRoutes(engine, deps)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	if cfg.API.EnableDocs {
		engine.GET("/docs", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
		})
		docsGroup := engine.Group("/docs")
		docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	searchGroup := engine.Group("/api/search")
	downloadGroup := engine.Group("/download")

	if cfg.RateLimiting.Enabled && limiter != nil {
		l := cfg.RateLimiting.Limit("search")
		searchGroup.Use(limiter.Middleware("search", l.RPS, l.Burst))

		// Each download runs yt-dlp and possibly ffmpeg, so this limit is much tighter
		l = cfg.RateLimiting.Limit("download")
		downloadGroup.Use(limiter.Middleware("download", l.RPS, l.Burst))
	}

	search.RegisterRoutes(searchGroup, deps)
	download.RegisterRoutes(downloadGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := apperrors.New(apperrors.ErrCodeNotFound, "the requested endpoint was not found").
			WithDetail("path", c.Request.URL.Path)
		types.RespondError(c, err, types.JSONErrors, true)
	}
}
