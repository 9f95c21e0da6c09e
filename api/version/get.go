package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/video-hunter/api/types"
)

// Get handles version requests
// @Summary      Build information
// @Tags         health
// @Produce      json
// @Success      200 {object} types.VersionResponse
// @Router       /version [get]
func Get(info types.VersionInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:        "Video Hunter API",
			Description: "Search a video platform and download 480p clips",
			VersionInfo: info,
		})
	}
}
