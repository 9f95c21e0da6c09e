package search

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/video-hunter/api/types"
)

// RegisterRoutes registers search routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/search (router already includes /search prefix)
	router.POST("", Post(deps))
}
