package ffmpeg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBinaryNotFound means ffmpeg or ffprobe could not be resolved
	ErrBinaryNotFound = errors.New("binary not found")
	// ErrNoVideoStream means the probed file has nothing to scale
	ErrNoVideoStream = errors.New("no video stream")
	// ErrTimeout means a probe or transcode ran past its deadline
	ErrTimeout = errors.New("processing timed out")
)

// StepError reports which processing step failed on which file
type StepError struct {
	Step   string
	Path   string
	Err    error
	Stderr string
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
	if tail := strings.TrimSpace(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepError(step, path string, err error, stderr string) *StepError {
	return &StepError{Step: step, Path: path, Err: err, Stderr: stderr}
}
