package types

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/killallgit/video-hunter/pkg/errors"
)

// ErrorFormat selects how an endpoint renders its errors
type ErrorFormat int

const (
	// JSONErrors always renders {"error": "..."}
	JSONErrors ErrorFormat = iota
	// TextErrors renders "Error: ..." as text/plain unless the client asks for JSON
	TextErrors
)

// ErrorStatus picks the HTTP status for err. Client errors keep their 4xx
// status; server side failures are reported with 200 unless statusCodes is set.
func ErrorStatus(err error, statusCodes bool) int {
	status := apperrors.GetHTTPCode(err)
	if status >= http.StatusInternalServerError && !statusCodes {
		return http.StatusOK
	}
	return status
}

// RespondError writes the error envelope and aborts the chain
func RespondError(c *gin.Context, err error, format ErrorFormat, statusCodes bool) {
	status := ErrorStatus(err, statusCodes)
	message := apperrors.Message(err)

	zerolog.Ctx(c.Request.Context()).Warn().
		Err(err).
		Str("code", string(apperrors.GetCode(err))).
		Int("status", status).
		Msg("request failed")

	if wantsJSON(c, format) {
		c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
		return
	}
	c.Abort()
	c.String(status, "Error: %s", message)
}

// wantsJSON decides the error representation. JSON endpoints never answer
// with text; text endpoints switch to JSON only when the Accept header prefers it.
func wantsJSON(c *gin.Context, format ErrorFormat) bool {
	if format == JSONErrors {
		return true
	}

	accept := strings.TrimSpace(c.GetHeader("Accept"))
	if accept == "" || accept == "*/*" {
		return false
	}

	return c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) == gin.MIMEJSON
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		appErr := apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		RespondError(c, appErr, JSONErrors, false)
		return false
	}
	return true
}
