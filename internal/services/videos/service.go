package videos

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/killallgit/video-hunter/internal/models"
	"github.com/killallgit/video-hunter/internal/services/extraction"
	"github.com/killallgit/video-hunter/internal/services/transient"
	apperrors "github.com/killallgit/video-hunter/pkg/errors"
)

const providerName = "yt-dlp"

// Service orchestrates the extraction provider, transcoder and transient store
type Service struct {
	provider    extraction.Provider
	transcoder  Transcoder
	store       FileStore
	searchLimit int
	constraints extraction.Constraints

	searchTimeout   time.Duration
	downloadTimeout time.Duration

	cache    SearchCache
	inflight singleflight.Group
}

// Option customises a Service
type Option func(*Service)

// WithSearchLimit sets how many results a search asks for
func WithSearchLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.searchLimit = limit
		}
	}
}

// WithConstraints overrides the fetch constraints
func WithConstraints(c extraction.Constraints) Option {
	return func(s *Service) {
		s.constraints = c
	}
}

// WithTimeouts bounds each provider call. Zero leaves the caller's deadline alone.
func WithTimeouts(search, download time.Duration) Option {
	return func(s *Service) {
		s.searchTimeout = search
		s.downloadTimeout = download
	}
}

// WithTranscoder enables post-fetch conformance
func WithTranscoder(t Transcoder) Option {
	return func(s *Service) {
		s.transcoder = t
	}
}

// WithSearchCache reuses successful results for identical queries
func WithSearchCache(c SearchCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// NewService creates a Service. Without options it asks for six results and
// fetches within DefaultConstraints.
func NewService(provider extraction.Provider, store FileStore, opts ...Option) *Service {
	s := &Service{
		provider:    provider,
		store:       store,
		searchLimit: 6,
		constraints: extraction.DefaultConstraints(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search forwards query to the provider and maps the raw entries. Concurrent
// identical queries share one provider call.
func (s *Service) Search(ctx context.Context, query string) ([]models.VideoSummary, error) {
	if s.cache != nil {
		if results, ok := s.cache.Get(query); ok {
			zerolog.Ctx(ctx).Debug().Str("query", query).Msg("search served from cache")
			return results, nil
		}
	}

	v, err, shared := s.inflight.Do(query, func() (any, error) {
		// one caller disconnecting must not fail the others waiting on this call
		return s.search(context.WithoutCancel(ctx), query)
	})
	if err != nil {
		return nil, err
	}

	results := v.([]models.VideoSummary)
	if s.cache != nil && !shared {
		s.cache.Set(query, results)
	}
	return results, nil
}

func (s *Service) search(ctx context.Context, query string) ([]models.VideoSummary, error) {
	ctx, cancel := withTimeout(ctx, s.searchTimeout)
	defer cancel()

	entries, err := s.provider.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, providerError("search", s.searchTimeout, err)
	}

	results := make([]models.VideoSummary, 0, len(entries))
	for _, entry := range entries {
		summary, ok := Summarize(entry)
		if !ok {
			zerolog.Ctx(ctx).Debug().Str("id", entry.ID).Msg("dropping search entry without a reference")
			continue
		}
		results = append(results, summary)
	}

	zerolog.Ctx(ctx).Debug().Str("query", query).Int("results", len(results)).Msg("search complete")
	return results, nil
}

// Summarize maps a raw entry to a VideoSummary. Entries without a reference are rejected.
func Summarize(entry extraction.Entry) (models.VideoSummary, bool) {
	if entry.URL == "" {
		return models.VideoSummary{}, false
	}

	summary := models.VideoSummary{
		Title: entry.Title,
		URL:   entry.URL,
	}
	if summary.Title == "" {
		summary.Title = entry.URL
	}
	// Providers list thumbnails smallest first
	if n := len(entry.Thumbnails); n > 0 {
		summary.Thumbnail = entry.Thumbnails[n-1].URL
	}
	return summary, true
}

// Download fetches ref, conforms it to the constraints and hands the file to the caller
func (s *Service) Download(ctx context.Context, ref string) (*transient.File, error) {
	if ref == "" {
		return nil, apperrors.MissingFieldError("url")
	}

	ctx, cancel := withTimeout(ctx, s.downloadTimeout)
	defer cancel()

	file := s.store.Acquire()
	logger := zerolog.Ctx(ctx).With().Str("ref", ref).Str("file", file.Path()).Logger()

	if err := s.provider.Fetch(ctx, ref, s.constraints, file.Path()); err != nil {
		file.Release()
		return nil, providerError("download", s.downloadTimeout, err)
	}

	if s.transcoder != nil {
		if err := s.transcoder.Conform(ctx, file.Path(), s.constraints.MaxHeight, s.constraints.Container); err != nil {
			file.Release()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, providerError("download", s.downloadTimeout, ctxErr)
			}
			return nil, apperrors.Internal("failed to process video", err)
		}
	}

	logger.Debug().Msg("download ready")
	return file, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// providerError classifies provider failures for the HTTP layer
func providerError(operation string, timeout time.Duration, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError(operation, timeout.String()).WithCause(err)
	}
	return apperrors.ExternalServiceError(providerName, err).WithDetail("operation", operation)
}
