package download

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/video-hunter/api/types"
)

// RegisterRoutes registers download routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /download?url=... (router already includes /download prefix)
	router.GET("", Get(deps))
}
