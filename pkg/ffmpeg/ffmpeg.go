package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, f.ffprobePath)
	}

	return nil
}

// Conform makes the file at path respect maxHeight and container, rewriting it
// in place when it does not. Missing binaries leave the file untouched.
func (f *FFmpeg) Conform(ctx context.Context, path string, maxHeight int, container string) error {
	logger := zerolog.Ctx(ctx)

	if err := f.ValidateBinaries(); err != nil {
		logger.Warn().Err(err).Str("file", path).Msg("skipping resolution check, serving file as fetched")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	metadata, err := f.Probe(ctx, path)
	if err != nil {
		return err
	}

	if !metadata.NeedsTranscode(maxHeight, container) {
		logger.Debug().Str("file", path).Int("height", metadata.Height).Str("format", metadata.Format).Msg("file already conforms")
		return nil
	}

	logger.Info().Str("file", path).Int("height", metadata.Height).Str("format", metadata.Format).
		Int("max_height", maxHeight).Msg("transcoding fetched file")

	return f.transcode(ctx, path, maxHeight)
}

// transcode rewrites path as H.264/AAC mp4 no taller than maxHeight
func (f *FFmpeg) transcode(ctx context.Context, path string, maxHeight int) error {
	out := path + TranscodeSuffix

	cmd := exec.CommandContext(ctx, f.ffmpegPath, transcodeArgs(path, out, maxHeight)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(out)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return stepError("transcode", path, ErrTimeout, stderr.String())
		}
		return stepError("transcode", path, err, stderr.String())
	}

	if err := os.Rename(out, path); err != nil {
		os.Remove(out)
		return stepError("replace", path, err, "")
	}

	return nil
}

// transcodeArgs builds the ffmpeg argument list for a height-capped mp4 re-encode
func transcodeArgs(in, out string, maxHeight int) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", in,
	}
	if maxHeight > 0 {
		// -2 keeps the width even, which libx264 requires
		args = append(args, "-vf", "scale=-2:min(ih\\,"+strconv.Itoa(maxHeight)+")")
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-f", "mp4",
		"-y",
		out,
	)
	return args
}
