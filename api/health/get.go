package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/video-hunter/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports whether yt-dlp (required) and ffmpeg (optional) can be found
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse "yt-dlp is missing"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    types.StatusOK,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Binaries:  map[string]types.BinaryStatus{},
		}
		code := http.StatusOK

		if deps != nil {
			if status := checkBinary(deps.ExtractorCheck); status != nil {
				response.Binaries["yt-dlp"] = *status
				if status.Error != "" {
					response.Status = types.StatusUnhealthy
					code = http.StatusServiceUnavailable
				}
			}

			// Without ffmpeg downloads are served as fetched
			if status := checkBinary(deps.TranscoderCheck); status != nil {
				response.Binaries["ffmpeg"] = *status
				if status.Error != "" && response.Status == types.StatusOK {
					response.Status = types.StatusDegraded
				}
			}
		}

		c.JSON(code, response)
	}
}

// checkBinary runs check, returning nil when it is not configured
func checkBinary(check types.BinaryCheck) *types.BinaryStatus {
	if check == nil {
		return nil
	}
	if err := check(); err != nil {
		return &types.BinaryStatus{Status: "missing", Error: err.Error()}
	}
	return &types.BinaryStatus{Status: "available"}
}
