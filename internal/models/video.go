package models

// VideoSummary is one search result as shown to the browser
type VideoSummary struct {
	Title     string `json:"title" example:"Funny cats compilation"`
	URL       string `json:"url" example:"https://www.youtube.com/watch?v=abc123"`
	Thumbnail string `json:"thumbnail" example:"https://i.ytimg.com/vi/abc123/hqdefault.jpg"`
}

// SearchRequest represents the incoming search request. An empty query is valid.
type SearchRequest struct {
	Query string `json:"query" example:"funny cats"`
}

// DownloadRequest carries the reference of the video to fetch
type DownloadRequest struct {
	URL string `form:"url" example:"https://www.youtube.com/watch?v=abc123"`
}
