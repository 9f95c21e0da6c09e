package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/killallgit/video-hunter/api"
	"github.com/killallgit/video-hunter/api/types"
	"github.com/killallgit/video-hunter/internal/models"
	"github.com/killallgit/video-hunter/internal/services/cache"
	"github.com/killallgit/video-hunter/internal/services/cleanup"
	"github.com/killallgit/video-hunter/internal/services/extraction"
	"github.com/killallgit/video-hunter/internal/services/transient"
	"github.com/killallgit/video-hunter/internal/services/videos"
	"github.com/killallgit/video-hunter/pkg/config"
	"github.com/killallgit/video-hunter/pkg/ffmpeg"
	"github.com/killallgit/video-hunter/pkg/ytdlp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Video Hunter API server with the configured settings.

Example:
  video-hunter serve
  video-hunter serve --port 9090
  video-hunter serve --host 127.0.0.1 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
}

// components is everything serve wires together before listening
type components struct {
	deps  *types.Dependencies
	store *transient.Store
	cache *cache.Memory[[]models.VideoSummary]
}

// close stops background work owned by the components
func (c *components) close() {
	if c.cache != nil {
		c.cache.Stop()
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		config.Set("server.host", host)
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid server port: %d", port)
		}
		config.Set("server.port", port)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	parts, err := buildComponents(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer parts.close()

	sweeper := cleanup.NewService(parts.store, cfg.Storage.MaxTempAge, cfg.Storage.CleanupSchedule, logger)
	if err := sweeper.Start(ctx); err != nil {
		return err
	}
	defer sweeper.Stop()

	server := api.NewServer(cfg, logger)
	server.SetDependencies(parts.deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	logger.Info().Str("addr", server.Addr()).Str("version", Version).Msg("server is ready to handle requests")

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down server")
	case runErr = <-serverErr:
		logger.Error().Err(runErr).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	logger.Info().Msg("server gracefully stopped")
	return runErr
}

// buildComponents creates the extraction client, transcoder, temp store and
// video service described by cfg. Missing binaries are reported, not fatal.
func buildComponents(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*components, error) {
	client := ytdlp.New(cfg.Extraction.YtdlpPath)
	if cfg.Extraction.AutoInstall {
		if err := client.Install(ctx); err != nil {
			return nil, err
		}
	}
	if err := client.Available(); err != nil {
		log.Warn().Err(err).Msg("search and download will fail until yt-dlp is installed")
	}

	store, err := transient.NewStore(cfg.Storage.TempDir, cfg.Storage.FilePrefix, cfg.Storage.FileExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare temp storage: %w", err)
	}

	ff := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)

	opts := []videos.Option{
		videos.WithSearchLimit(cfg.Extraction.SearchLimit),
		videos.WithConstraints(extraction.Constraints{
			MaxHeight: cfg.Extraction.MaxHeight,
			Container: cfg.Extraction.Container,
		}),
		videos.WithTimeouts(cfg.Extraction.SearchTimeout, cfg.Extraction.DownloadTimeout),
	}
	var results *cache.Memory[[]models.VideoSummary]
	if cfg.Extraction.SearchCacheTTL > 0 {
		results = cache.NewMemory[[]models.VideoSummary](cfg.Extraction.SearchCacheTTL, cfg.Extraction.SearchCacheEntries, time.Minute)
		opts = append(opts, videos.WithSearchCache(results))
	}
	if cfg.Processing.TranscodeEnabled {
		if err := ff.ValidateBinaries(); err != nil {
			log.Warn().Err(err).Msg("downloads will be served as fetched")
		}
		opts = append(opts, videos.WithTranscoder(ff))
	}

	deps := &types.Dependencies{
		VideoService:     videos.NewService(client, store, opts...),
		AttachmentName:   cfg.Download.AttachmentName,
		ErrorStatusCodes: cfg.API.ErrorStatusCodes,
		ExtractorCheck:   client.Available,
		TranscoderCheck:  ff.ValidateBinaries,
		Version:          versionInfo(),
	}

	return &components{deps: deps, store: store, cache: results}, nil
}
