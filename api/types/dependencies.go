package types

import (
	"github.com/killallgit/video-hunter/internal/services/videos"
)

// BinaryCheck reports whether an external executable is usable
type BinaryCheck func() error

// VersionInfo describes the running build
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	VideoService videos.VideoService

	// AttachmentName is the filename offered for every download
	AttachmentName string
	// ErrorStatusCodes makes provider failures use their mapped status instead of 200
	ErrorStatusCodes bool

	ExtractorCheck  BinaryCheck
	TranscoderCheck BinaryCheck

	Version VersionInfo
}
