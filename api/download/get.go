package download

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/killallgit/video-hunter/api/types"
	"github.com/killallgit/video-hunter/internal/models"
	apperrors "github.com/killallgit/video-hunter/pkg/errors"
)

// DefaultAttachmentName is offered when none is configured
const DefaultAttachmentName = "Highlight.mp4"

// Get streams a fetched video back as an attachment
// @Summary      Download a video
// @Description  Fetches the referenced video capped at 480p and returns it as an attachment named Highlight.mp4. Errors are plain text prefixed with "Error:" unless the client asks for JSON.
// @Tags         download
// @Produce      video/mp4
// @Produce      plain
// @Param        url query string true "Video reference as returned by search"
// @Success      200 {file} binary "Video file"
// @Failure      400 {string} string "Error: required field 'url' is missing"
// @Failure      502 {string} string "Error: provider failure (200 unless api.error_status_codes is set)"
// @Router       /download [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		statusCodes := deps != nil && deps.ErrorStatusCodes

		var req models.DownloadRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			types.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid query: "+err.Error()), types.TextErrors, statusCodes)
			return
		}

		ref := strings.TrimSpace(req.URL)
		if ref == "" {
			types.RespondError(c, apperrors.MissingFieldError("url"), types.TextErrors, statusCodes)
			return
		}

		if deps == nil || deps.VideoService == nil {
			types.RespondError(c, apperrors.New(apperrors.ErrCodeServiceDown, "download service not available"), types.TextErrors, true)
			return
		}

		file, err := deps.VideoService.Download(c.Request.Context(), ref)
		if err != nil {
			types.RespondError(c, err, types.TextErrors, statusCodes)
			return
		}
		defer file.Release()

		name := deps.AttachmentName
		if name == "" {
			name = DefaultAttachmentName
		}

		zerolog.Ctx(c.Request.Context()).Info().Str("ref", ref).Str("file", file.Path()).Msg("serving download")
		c.FileAttachment(file.Path(), name)
	}
}
