package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/video-hunter/api/types"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := func() error { return nil }
	missing := func() error { return errors.New("not found in $PATH") }

	tests := []struct {
		name           string
		deps           *types.Dependencies
		expectedStatus int
		expectedHealth string
		expectedBins   map[string]string
	}{
		{
			name:           "all binaries available",
			deps:           &types.Dependencies{ExtractorCheck: ok, TranscoderCheck: ok},
			expectedStatus: http.StatusOK,
			expectedHealth: types.StatusOK,
			expectedBins:   map[string]string{"yt-dlp": "available", "ffmpeg": "available"},
		},
		{
			name:           "ffmpeg missing degrades",
			deps:           &types.Dependencies{ExtractorCheck: ok, TranscoderCheck: missing},
			expectedStatus: http.StatusOK,
			expectedHealth: types.StatusDegraded,
			expectedBins:   map[string]string{"yt-dlp": "available", "ffmpeg": "missing"},
		},
		{
			name:           "yt-dlp missing is unhealthy",
			deps:           &types.Dependencies{ExtractorCheck: missing, TranscoderCheck: ok},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: types.StatusUnhealthy,
			expectedBins:   map[string]string{"yt-dlp": "missing", "ffmpeg": "available"},
		},
		{
			name:           "no checks configured",
			deps:           &types.Dependencies{},
			expectedStatus: http.StatusOK,
			expectedHealth: types.StatusOK,
			expectedBins:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Get(tt.deps)(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response types.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.NotEmpty(t, response.Timestamp)

			require.Len(t, response.Binaries, len(tt.expectedBins))
			for name, status := range tt.expectedBins {
				assert.Equal(t, status, response.Binaries[name].Status, "binary %s", name)
			}
		})
	}
}
