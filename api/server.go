package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/killallgit/video-hunter/api/types"
	"github.com/killallgit/video-hunter/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	config      *config.Config
	logger      zerolog.Logger
	rateLimiter *RateLimiter

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, logger zerolog.Logger) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	address := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))

	return &Server{
		engine:      engine,
		config:      cfg,
		logger:      logger,
		rateLimiter: NewRateLimiter(0),
		httpServer: &http.Server{
			Addr:           address,
			Handler:        engine,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		},
	}
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies == nil || s.dependencies.VideoService == nil {
		return fmt.Errorf("video service dependency is required")
	}

	s.setupMiddleware()

	return RegisterRoutes(s.engine, s.dependencies, s.config, s.rateLimiter)
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	security := s.config.Security

	if security.EnableRequestID {
		s.engine.Use(RequestID(s.logger))
	} else {
		s.engine.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(s.logger.WithContext(c.Request.Context()))
			c.Next()
		})
	}

	s.engine.Use(RequestLogger())

	if security.EnableCORS {
		s.engine.Use(CORS(security.CORSOrigins...))
	}

	maxBytes := security.MaxRequestBytes
	if maxBytes <= 0 {
		maxBytes = 1024 * 1024
	}
	s.engine.Use(RequestSizeLimitWithSize(maxBytes))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	return s.httpServer.Shutdown(ctx)
}
