package search

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/video-hunter/api/types"
	"github.com/killallgit/video-hunter/internal/models"
	apperrors "github.com/killallgit/video-hunter/pkg/errors"
)

// Post handles video search requests
// @Summary      Search for videos
// @Description  Runs a light keyword search and returns title, url and thumbnail for each hit. An empty query is forwarded unchanged.
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        request body models.SearchRequest true "Search query"
// @Success      200 {array}  models.VideoSummary "Search results, possibly empty"
// @Failure      400 {object} types.ErrorResponse "Malformed request body"
// @Failure      502 {object} types.ErrorResponse "Provider failure (200 unless api.error_status_codes is set)"
// @Failure      504 {object} types.ErrorResponse "Provider timeout (200 unless api.error_status_codes is set)"
// @Router       /api/search [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SearchRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if deps == nil || deps.VideoService == nil {
			types.RespondError(c, apperrors.New(apperrors.ErrCodeServiceDown, "search service not available"), types.JSONErrors, true)
			return
		}

		results, err := deps.VideoService.Search(c.Request.Context(), req.Query)
		if err != nil {
			types.RespondError(c, err, types.JSONErrors, deps.ErrorStatusCodes)
			return
		}

		if results == nil {
			results = []models.VideoSummary{}
		}
		c.JSON(http.StatusOK, results)
	}
}
