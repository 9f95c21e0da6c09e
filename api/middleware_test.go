package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		origins         []string
		method          string
		origin          string
		expectedStatus  int
		expectedHeaders map[string]string
	}{
		{
			name:           "preflight request",
			method:         http.MethodOptions,
			origin:         "https://example.com",
			expectedStatus: http.StatusNoContent,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
			},
		},
		{
			name:           "regular GET request",
			origins:        []string{"*"},
			method:         http.MethodGet,
			origin:         "https://example.com",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":   "*",
				"Access-Control-Expose-Headers": "Content-Disposition, X-Request-ID",
			},
		},
		{
			name:           "allowed origin is echoed",
			origins:        []string{"https://hunter.example"},
			method:         http.MethodGet,
			origin:         "https://hunter.example",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "https://hunter.example",
			},
		},
		{
			name:           "unknown origin gets no allow header",
			origins:        []string{"https://hunter.example"},
			method:         http.MethodGet,
			origin:         "https://evil.example",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, router := gin.CreateTestContext(w)

			router.Use(CORS(tt.origins...))
			router.Any("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for header, expectedValue := range tt.expectedHeaders {
				assert.Equal(t, expectedValue, w.Header().Get(header), "Header: %s", header)
			}
		})
	}
}

func TestRequestSizeLimitWithSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	customLimit := int64(512 * 1024)

	tests := []struct {
		name           string
		bodySize       int
		expectedStatus int
	}{
		{"request under custom limit", 256 * 1024, http.StatusOK},
		{"request at custom limit", 512 * 1024, http.StatusOK},
		{"request over custom limit", 1024 * 1024, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, router := gin.CreateTestContext(w)

			router.Use(RequestSizeLimitWithSize(customLimit))
			router.POST("/test", func(c *gin.Context) {
				body, err := io.ReadAll(c.Request.Body)
				if err != nil {
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusOK, gin.H{"received": len(body)})
			})

			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("a", tt.bodySize)))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestID(logger), RequestLogger())
	router.GET("/test", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
		c.Status(http.StatusOK)
	})

	t.Run("generates an id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 20)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(line), &entry))
			assert.Equal(t, id, entry["request_id"])
		}

		var access map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &access))
		assert.Equal(t, "/test", access["path"])
		assert.Equal(t, float64(http.StatusOK), access["status"])
	})

	t.Run("keeps a caller supplied id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "upstream-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "upstream-123", w.Header().Get(RequestIDHeader))
	})
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name              string
		requestCount      int
		requestsPerSecond int
		burstSize         int
		expectSomeBlocked bool
		waitBetween       time.Duration
	}{
		{"requests under rate limit", 3, 10, 5, false, 0},
		{"burst requests", 6, 2, 3, true, 0},
		{"spaced requests", 5, 10, 2, false, 150 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(time.Minute)
			defer limiter.Stop()

			router := gin.New()
			router.Use(limiter.Middleware("test", tt.requestsPerSecond, tt.burstSize))
			router.GET("/api/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			successCount := 0
			blockedCount := 0

			for i := 0; i < tt.requestCount; i++ {
				if tt.waitBetween > 0 && i > 0 {
					time.Sleep(tt.waitBetween)
				}

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
				req.RemoteAddr = "127.0.0.1:12345"
				router.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
					assert.Contains(t, w.Body.String(), `"error"`)
				}
			}

			if tt.expectSomeBlocked {
				assert.Greater(t, blockedCount, 0, "Expected some requests to be blocked")
			} else {
				assert.Equal(t, 0, blockedCount, "Expected no requests to be blocked")
				assert.Equal(t, tt.requestCount, successCount, "Expected all requests to succeed")
			}
		})
	}
}

func TestRateLimiter_GroupsAndClientsAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := gin.New()
	router.GET("/download", limiter.Middleware("download", 1, 1), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/search", limiter.Middleware("search", 1, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(path, addr string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("/download", "127.0.0.1:1").Code)
	blocked := do("/download", "127.0.0.1:1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.True(t, strings.HasPrefix(blocked.Body.String(), "Error:"))

	assert.Equal(t, http.StatusOK, do("/api/search", "127.0.0.1:1").Code, "other group has its own bucket")
	assert.Equal(t, http.StatusOK, do("/download", "192.168.1.1:2").Code, "other client has its own bucket")
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	limiter := NewRateLimiter(time.Minute)
	defer limiter.Stop()

	now := time.Now()
	limiter.clients.Store("search|old", &clientLimiter{lastSeen: now.Add(-2 * time.Minute)})
	limiter.clients.Store("search|new", &clientLimiter{lastSeen: now})

	assert.Equal(t, 1, limiter.evictIdle(now))

	_, ok := limiter.clients.Load("search|old")
	assert.False(t, ok)
	_, ok = limiter.clients.Load("search|new")
	assert.True(t, ok)

	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}
