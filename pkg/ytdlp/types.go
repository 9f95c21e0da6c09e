package ytdlp

import (
	"encoding/json"
	"fmt"

	"github.com/killallgit/video-hunter/internal/services/extraction"
)

// searchResult is the -J document yt-dlp prints for a flat ytsearch playlist
type searchResult struct {
	Type    string        `json:"_type"`
	Entries []searchEntry `json:"entries"`
}

type searchEntry struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	URL        string      `json:"url"`
	WebpageURL string      `json:"webpage_url"`
	Channel    string      `json:"channel"`
	Duration   float64     `json:"duration"`
	Thumbnails []thumbnail `json:"thumbnails"`
}

type thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// parseSearchResult maps yt-dlp JSON output to extraction entries
func parseSearchResult(data []byte) ([]extraction.Entry, error) {
	var result searchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	entries := make([]extraction.Entry, 0, len(result.Entries))
	for _, e := range result.Entries {
		ref := e.URL
		if ref == "" {
			ref = e.WebpageURL
		}

		thumbs := make([]extraction.Thumbnail, 0, len(e.Thumbnails))
		for _, th := range e.Thumbnails {
			thumbs = append(thumbs, extraction.Thumbnail{URL: th.URL, Width: th.Width, Height: th.Height})
		}

		entries = append(entries, extraction.Entry{
			ID:         e.ID,
			Title:      e.Title,
			URL:        ref,
			Channel:    e.Channel,
			Duration:   e.Duration,
			Thumbnails: thumbs,
		})
	}
	return entries, nil
}
