package version

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/video-hunter/api/types"
)

// RegisterRoutes registers version routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	var info types.VersionInfo
	if deps != nil {
		info = deps.Version
	}
	engine.GET("/version", Get(info))
}
