package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"github.com/killallgit/video-hunter/internal/services/extraction"
)

// ErrNoOutput is returned when yt-dlp exits cleanly without producing the requested file
var ErrNoOutput = errors.New("yt-dlp produced no output file")

// runFunc executes a prepared command, returning the captured result
type runFunc func(ctx context.Context, cmd *ytdlp.Command, args ...string) (*ytdlp.Result, error)

// Client drives the yt-dlp executable through go-ytdlp
type Client struct {
	executable string
	run        runFunc
}

// New creates a Client. An empty executable means "yt-dlp" on PATH.
func New(executable string) *Client {
	if executable == "" {
		executable = "yt-dlp"
	}
	return &Client{
		executable: executable,
		run: func(ctx context.Context, cmd *ytdlp.Command, args ...string) (*ytdlp.Result, error) {
			return cmd.Run(ctx, args...)
		},
	}
}

// Install downloads a managed yt-dlp build when none is usable and points the client at it
func (c *Client) Install(ctx context.Context) error {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	c.executable = resolved.Executable
	zerolog.Ctx(ctx).Info().Str("executable", c.executable).Msg("using managed yt-dlp")
	return nil
}

// Executable returns the configured yt-dlp path
func (c *Client) Executable() string {
	return c.executable
}

// Available reports whether the yt-dlp executable can be resolved
func (c *Client) Available() error {
	if _, err := exec.LookPath(c.executable); err != nil {
		return fmt.Errorf("yt-dlp not found: %s: %w", c.executable, err)
	}
	return nil
}

func (c *Client) command() *ytdlp.Command {
	return ytdlp.New().SetExecutable(c.executable)
}

// Search runs a flat search, returning raw entries in provider order
func (c *Client) Search(ctx context.Context, query string, limit int) ([]extraction.Entry, error) {
	if limit <= 0 {
		limit = 6
	}

	cmd := c.command().
		DefaultSearch(fmt.Sprintf("ytsearch%d", limit)).
		FlatPlaylist().
		DumpSingleJSON().
		Quiet().
		NoWarnings()

	zerolog.Ctx(ctx).Debug().Str("query", query).Int("limit", limit).Msg("yt-dlp search")

	result, err := c.run(ctx, cmd, positional(query)...)
	if err != nil {
		return nil, runError(ctx, result, err)
	}

	entries, err := parseSearchResult([]byte(result.Stdout))
	if err != nil {
		return nil, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Fetch downloads ref to exactly destPath in a format bounded by constraints
func (c *Client) Fetch(ctx context.Context, ref string, constraints extraction.Constraints, destPath string) error {
	cmd := c.command().
		Format(constraints.FormatSelector()).
		Output(destPath).
		NoPlaylist().
		ForceOverwrites().
		NoPart().
		Quiet().
		NoWarnings()

	zerolog.Ctx(ctx).Debug().Str("ref", ref).Str("format", constraints.FormatSelector()).Str("dest", destPath).Msg("yt-dlp fetch")

	result, err := c.run(ctx, cmd, positional(ref)...)
	if err != nil {
		return runError(ctx, result, err)
	}

	if info, err := os.Stat(destPath); err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrNoOutput, destPath)
	}
	return nil
}

// positional ends option parsing so user input is never read as a yt-dlp flag
func positional(arg string) []string {
	return []string{"--", arg}
}

// runError turns a failed run into an error whose message is yt-dlp's own diagnostic
func runError(ctx context.Context, result *ytdlp.Result, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if result != nil {
		if msg := lastErrorLine(result.Stderr); msg != "" {
			return &Error{Message: msg, Err: err}
		}
	}
	return &Error{Message: err.Error(), Err: err}
}

// lastErrorLine returns the last "ERROR:" line of stderr, or the last non-empty line
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// Error is a failed yt-dlp invocation
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
