package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides (HUNTER_SERVER_PORT, ...)
const EnvPrefix = "HUNTER"

var (
	once    sync.Once
	initErr error

	configPath = "./config/settings.yaml"
	envFile    = ".env"
)

// SetConfigPath overrides the settings file location. Must be called before Init.
func SetConfigPath(path string) {
	if path != "" {
		configPath = path
	}
}

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// .env only seeds the process environment, real env vars win
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			initErr = fmt.Errorf("error loading %s: %w", envFile, err)
			return
		}

		setDefaults()

		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		path := filepath.Clean(configPath)
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			// A missing settings file just means defaults and env vars
			if !errors.Is(err, fs.ErrNotExist) {
				initErr = fmt.Errorf("error reading config file %s: %w", path, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// reset clears the one-shot state so tests can re-run Init
func reset() {
	once = sync.Once{}
	initErr = nil
	viper.Reset()
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Set overrides a config value at runtime (used by CLI flags)
func Set(key string, value any) {
	viper.Set(key, value)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetInt("extraction.max_height") <= 0 {
		return fmt.Errorf("extraction.max_height must be positive")
	}

	if strings.TrimSpace(viper.GetString("storage.temp_dir")) == "" {
		return fmt.Errorf("storage.temp_dir is required")
	}

	if strings.TrimSpace(viper.GetString("storage.file_prefix")) == "" {
		return fmt.Errorf("storage.file_prefix is required")
	}

	if strings.TrimSpace(viper.GetString("download.attachment_name")) == "" {
		return fmt.Errorf("download.attachment_name is required")
	}

	// Auto-correct invalid search limit
	if viper.GetInt("extraction.search_limit") <= 0 {
		viper.Set("extraction.search_limit", 6)
	}

	for _, key := range []string{"extraction.search_timeout", "extraction.download_timeout", "processing.ffmpeg_timeout", "storage.max_temp_age"} {
		if viper.GetDuration(key) <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Extraction.MaxHeight <= 0 {
		return fmt.Errorf("extraction max height must be positive")
	}

	if c.Storage.TempDir == "" || c.Storage.FilePrefix == "" {
		return fmt.Errorf("storage temp dir and file prefix are required")
	}

	if c.Download.AttachmentName == "" {
		return fmt.Errorf("download attachment name is required")
	}

	if c.Storage.MaxTempAge <= 0 {
		return fmt.Errorf("storage max temp age must be positive")
	}

	if c.Extraction.SearchLimit <= 0 {
		c.Extraction.SearchLimit = 6
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	// Downloads stream whole files, so the write deadline covers the fetch as well
	viper.SetDefault("server.write_timeout", 15*time.Minute)
	viper.SetDefault("server.idle_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Extraction defaults
	viper.SetDefault("extraction.ytdlp_path", "yt-dlp")
	viper.SetDefault("extraction.auto_install", false)
	viper.SetDefault("extraction.search_limit", 6)
	viper.SetDefault("extraction.search_timeout", 30*time.Second)
	viper.SetDefault("extraction.download_timeout", 10*time.Minute)
	viper.SetDefault("extraction.max_height", 480)
	viper.SetDefault("extraction.container", "mp4")
	viper.SetDefault("extraction.search_cache_ttl", 5*time.Minute)
	viper.SetDefault("extraction.search_cache_entries", 256)

	// Processing defaults
	viper.SetDefault("processing.transcode_enabled", true)
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.ffmpeg_timeout", 5*time.Minute)

	// Storage defaults
	viper.SetDefault("storage.temp_dir", os.TempDir())
	viper.SetDefault("storage.file_prefix", "video_")
	viper.SetDefault("storage.file_extension", ".mp4")
	viper.SetDefault("storage.max_temp_age", 1*time.Hour)
	viper.SetDefault("storage.cleanup_schedule", "@every 15m")

	// Download defaults
	viper.SetDefault("download.attachment_name", "Highlight.mp4")

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]any{
		"search":   map[string]any{"rps": 5, "burst": 10},
		"download": map[string]any{"rps": 1, "burst": 3},
		"default":  map[string]any{"rps": 10, "burst": 20},
	})

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.enable_request_id", true)
	viper.SetDefault("security.max_request_bytes", 1048576)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	// API defaults
	viper.SetDefault("api.error_status_codes", false)
	viper.SetDefault("api.enable_docs", true)
}
