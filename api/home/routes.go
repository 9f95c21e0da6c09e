package home

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/video-hunter/api/types"
)

// RegisterRoutes registers the page routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	engine.GET("/", Get())
}
