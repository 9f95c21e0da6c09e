package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/video-hunter/api/types"
	"github.com/killallgit/video-hunter/internal/models"
	"github.com/killallgit/video-hunter/internal/services/transient"
	"github.com/killallgit/video-hunter/pkg/config"
)

type stubVideoService struct{}

func (stubVideoService) Search(ctx context.Context, query string) ([]models.VideoSummary, error) {
	return []models.VideoSummary{{Title: "t", URL: "u", Thumbnail: ""}}, nil
}

func (stubVideoService) Download(ctx context.Context, ref string) (*transient.File, error) {
	return nil, errors.New("unavailable")
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           5000,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   15 * time.Minute,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		RateLimiting: config.RateLimitConfig{
			Enabled: true,
			Endpoints: map[string]config.EndpointLimit{
				"search":   {RPS: 5, Burst: 10},
				"download": {RPS: 1, Burst: 3},
			},
		},
		Security: config.SecurityConfig{EnableCORS: true, EnableRequestID: true, MaxRequestBytes: 1 << 20},
		API:      config.APIConfig{EnableDocs: true},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := NewServer(testConfig(), zerolog.Nop())
	server.SetDependencies(&types.Dependencies{VideoService: stubVideoService{}})
	require.NoError(t, server.Initialize())
	t.Cleanup(func() { server.rateLimiter.Stop() })
	return server
}

func TestNewServer(t *testing.T) {
	server := NewServer(testConfig(), zerolog.Nop())
	defer server.rateLimiter.Stop()

	assert.Equal(t, "127.0.0.1:5000", server.Addr())
	assert.Equal(t, 15*time.Minute, server.httpServer.WriteTimeout)
	assert.Equal(t, 1<<20, server.httpServer.MaxHeaderBytes)
	assert.NotNil(t, server.Engine())
}

func TestServer_InitializeRequiresVideoService(t *testing.T) {
	server := NewServer(testConfig(), zerolog.Nop())
	defer server.rateLimiter.Stop()

	assert.Error(t, server.Initialize())
}

func TestServer_Routes(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"home page", http.MethodGet, "/", "", http.StatusOK},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"version", http.MethodGet, "/version", "", http.StatusOK},
		{"docs redirect", http.MethodGet, "/docs", "", http.StatusMovedPermanently},
		{"search", http.MethodPost, "/api/search", `{"query":"cats"}`, http.StatusOK},
		{"download without url", http.MethodGet, "/download", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			server.Engine().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestNotFoundHandler(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	server.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "the requested endpoint was not found", body.Error)
}

func TestServer_DownloadIsRateLimited(t *testing.T) {
	server := newTestServer(t)

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/download", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		server.Engine().ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Contains(t, codes, http.StatusTooManyRequests)
}
