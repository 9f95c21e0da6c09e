package transient

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// sideSuffixes are companion files yt-dlp and the transcoder may leave next to a media file
var sideSuffixes = []string{".part", ".ytdl", ".transcode.mp4"}

// Store hands out unique paths inside one shared temp directory
type Store struct {
	dir    string
	prefix string
	ext    string
	names  *regexp.Regexp
	now    func() time.Time
}

// NewStore creates a Store. ext should include the leading dot.
func NewStore(dir, prefix, ext string) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if prefix == "" {
		return nil, fmt.Errorf("transient file prefix is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir %s: %w", dir, err)
	}
	return &Store{dir: dir, prefix: prefix, ext: ext, names: namePattern(prefix, ext), now: time.Now}, nil
}

// Dir returns the directory files are created in
func (s *Store) Dir() string {
	return s.dir
}

// Acquire reserves a new path of the form <prefix><unix>_<uuid><ext>. Nothing is
// written to disk; the path is owned by the caller until Release.
func (s *Store) Acquire() *File {
	name := fmt.Sprintf("%s%d_%s%s", s.prefix, s.now().Unix(), uuid.NewString(), s.ext)
	return &File{path: filepath.Join(s.dir, name)}
}

// Owns reports whether name is exactly a file this store hands out, or one of its side files
func (s *Store) Owns(name string) bool {
	return s.names.MatchString(filepath.Base(name))
}

// namePattern matches <prefix><unix>_<uuid><ext> plus an optional side suffix
func namePattern(prefix, ext string) *regexp.Regexp {
	sides := make([]string, 0, len(sideSuffixes))
	for _, suffix := range sideSuffixes {
		sides = append(sides, regexp.QuoteMeta(suffix))
	}
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) +
		`[0-9]+_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}` +
		regexp.QuoteMeta(ext) + `(` + strings.Join(sides, "|") + `)?$`)
}

// Sweep removes store files whose modification time is older than maxAge and
// returns how many were removed.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("sweep max age must be positive, got %s", maxAge)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read temp dir %s: %w", s.dir, err)
	}

	cutoff := s.now().Add(-maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !s.Owns(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.dir, entry.Name())
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Str("file", path).Msg("failed to remove stale temp file")
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		log.Debug().Int("removed", removed).Str("dir", s.dir).Msg("swept stale temp files")
	}

	return removed, nil
}

// File is a transient media file owned by one request
type File struct {
	path string
	once sync.Once
}

// Path returns the absolute location of the file
func (f *File) Path() string {
	return f.path
}

// Release deletes the file and its side files. Safe to call more than once.
func (f *File) Release() {
	f.once.Do(func() {
		for _, p := range append([]string{f.path}, sidePaths(f.path)...) {
			if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Str("file", p).Msg("failed to remove temp file")
			}
		}
	})
}

func sidePaths(path string) []string {
	paths := make([]string, 0, len(sideSuffixes))
	for _, suffix := range sideSuffixes {
		paths = append(paths, path+suffix)
	}
	return paths
}
