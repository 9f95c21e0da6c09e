package ffmpeg

import "strings"

// VideoMetadata is what ffprobe reports about a fetched file
type VideoMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	Width      int     `json:"width"`       // Width of the first video stream
	Height     int     `json:"height"`      // Height of the first video stream
	Format     string  `json:"format"`      // ffprobe format_name, e.g. "mov,mp4,m4a,3gp,3g2,mj2"
	VideoCodec string  `json:"video_codec"` // Codec of the first video stream
	AudioCodec string  `json:"audio_codec"` // Codec of the first audio stream
	Size       int64   `json:"size"`        // File size in bytes
}

// HasContainer reports whether the probed format list names container
func (m *VideoMetadata) HasContainer(container string) bool {
	if container == "" {
		return true
	}
	for _, name := range strings.Split(m.Format, ",") {
		if strings.EqualFold(strings.TrimSpace(name), container) {
			return true
		}
	}
	return false
}

// NeedsTranscode reports whether the file exceeds maxHeight or sits in the wrong container
func (m *VideoMetadata) NeedsTranscode(maxHeight int, container string) bool {
	if maxHeight > 0 && m.Height > maxHeight {
		return true
	}
	return !m.HasContainer(container)
}

// TranscodeSuffix is appended to the source path for the intermediate output
const TranscodeSuffix = ".transcode.mp4"
