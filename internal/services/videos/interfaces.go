package videos

import (
	"context"

	"github.com/killallgit/video-hunter/internal/models"
	"github.com/killallgit/video-hunter/internal/services/transient"
)

// VideoService defines the search and download operations the endpoints share
type VideoService interface {
	// Search returns summaries for query, never nil
	Search(ctx context.Context, query string) ([]models.VideoSummary, error)
	// Download fetches ref into a transient file. The caller must Release it.
	Download(ctx context.Context, ref string) (*transient.File, error)
}

// Transcoder brings a fetched file within the height and container constraints
type Transcoder interface {
	Conform(ctx context.Context, path string, maxHeight int, container string) error
}

// FileStore hands out transient paths
type FileStore interface {
	Acquire() *transient.File
}

// SearchCache stores search results by query
type SearchCache interface {
	Get(query string) ([]models.VideoSummary, bool)
	Set(query string, results []models.VideoSummary)
}
