package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Extraction   ExtractionConfig `mapstructure:"extraction"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	Storage      StorageConfig    `mapstructure:"storage"`
	Download     DownloadConfig   `mapstructure:"download"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Security     SecurityConfig   `mapstructure:"security"`
	Logging      LoggingConfig    `mapstructure:"logging"`
	API          APIConfig        `mapstructure:"api"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// ExtractionConfig contains yt-dlp settings
type ExtractionConfig struct {
	YtdlpPath       string        `mapstructure:"ytdlp_path"`
	AutoInstall     bool          `mapstructure:"auto_install"`
	SearchLimit     int           `mapstructure:"search_limit"`
	SearchTimeout   time.Duration `mapstructure:"search_timeout"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	MaxHeight       int           `mapstructure:"max_height"`
	Container       string        `mapstructure:"container"`
	// SearchCacheTTL of zero disables result caching
	SearchCacheTTL     time.Duration `mapstructure:"search_cache_ttl"`
	SearchCacheEntries int           `mapstructure:"search_cache_entries"`
}

// ProcessingConfig contains ffmpeg settings
type ProcessingConfig struct {
	TranscodeEnabled bool          `mapstructure:"transcode_enabled"`
	FFmpegPath       string        `mapstructure:"ffmpeg_path"`
	FFprobePath      string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout    time.Duration `mapstructure:"ffmpeg_timeout"`
}

// StorageConfig contains transient file settings
type StorageConfig struct {
	TempDir         string        `mapstructure:"temp_dir"`
	FilePrefix      string        `mapstructure:"file_prefix"`
	FileExtension   string        `mapstructure:"file_extension"`
	MaxTempAge      time.Duration `mapstructure:"max_temp_age"`
	CleanupSchedule string        `mapstructure:"cleanup_schedule"`
}

// DownloadConfig contains download response settings
type DownloadConfig struct {
	AttachmentName string `mapstructure:"attachment_name"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool                     `mapstructure:"enabled"`
	Endpoints map[string]EndpointLimit `mapstructure:"endpoints"`
}

// EndpointLimit is a token bucket definition for one route group
type EndpointLimit struct {
	RPS   int `mapstructure:"rps"`
	Burst int `mapstructure:"burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS      bool     `mapstructure:"enable_cors"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	EnableRequestID bool     `mapstructure:"enable_request_id"`
	MaxRequestBytes int64    `mapstructure:"max_request_bytes"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// APIConfig contains response contract settings
type APIConfig struct {
	// ErrorStatusCodes switches provider failures from 200 to their mapped HTTP status
	ErrorStatusCodes bool `mapstructure:"error_status_codes"`
	EnableDocs       bool `mapstructure:"enable_docs"`
}

// Limit returns the configured limit for an endpoint group, falling back to "default"
func (r RateLimitConfig) Limit(name string) EndpointLimit {
	if l, ok := r.Endpoints[name]; ok && l.RPS > 0 {
		return l
	}
	if l, ok := r.Endpoints["default"]; ok && l.RPS > 0 {
		return l
	}
	return EndpointLimit{RPS: 10, Burst: 20}
}
