package extraction

import (
	"context"
	"fmt"
)

// Thumbnail is one preview image reported by the provider, in provider order
type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// Entry is a raw search hit as returned by the provider
type Entry struct {
	ID         string
	Title      string
	URL        string
	Channel    string
	Duration   float64
	Thumbnails []Thumbnail
}

// Constraints bound the media variant a fetch may select
type Constraints struct {
	MaxHeight int
	Container string
}

// DefaultConstraints caps downloads at 480p mp4
func DefaultConstraints() Constraints {
	return Constraints{MaxHeight: 480, Container: "mp4"}
}

// FormatSelector renders the constraints as a yt-dlp format expression. The
// last alternative keeps a fetch from failing outright when nothing fits.
func (c Constraints) FormatSelector() string {
	if c.MaxHeight <= 0 {
		if c.Container == "" {
			return "best"
		}
		return fmt.Sprintf("best[ext=%s]/best", c.Container)
	}
	if c.Container == "" {
		return fmt.Sprintf("best[height<=%d]/worst", c.MaxHeight)
	}
	return fmt.Sprintf("best[height<=%d][ext=%s]/best[height<=%d]/worst", c.MaxHeight, c.Container, c.MaxHeight)
}

// Provider searches the video platform and fetches media
type Provider interface {
	// Search returns up to limit flat entries for query. An empty query is forwarded as-is.
	Search(ctx context.Context, query string, limit int) ([]Entry, error)
	// Fetch downloads ref to exactly destPath.
	Fetch(ctx context.Context, ref string, constraints Constraints, destPath string) error
}
