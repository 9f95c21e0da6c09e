package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/video-hunter/internal/services/transient"
)

func TestSweepOnce(t *testing.T) {
	dir := t.TempDir()
	store, err := transient.NewStore(dir, "video_", ".mp4")
	require.NoError(t, err)

	old := store.Acquire().Path()
	fresh := store.Acquire().Path()
	foreign := filepath.Join(dir, "video_notes.txt")
	for _, p := range []string{old, fresh, foreign} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))
	require.NoError(t, os.Chtimes(foreign, stale, stale))

	buf := new(bytes.Buffer)
	require.NoError(t, sweepOnce(buf, store, time.Hour))

	assert.Contains(t, buf.String(), "Removed 1 stale file(s)")
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, foreign)
}

func TestSweepOnce_NonPositiveAge(t *testing.T) {
	store, err := transient.NewStore(t.TempDir(), "video_", ".mp4")
	require.NoError(t, err)

	assert.Error(t, sweepOnce(new(bytes.Buffer), store, -time.Minute))
	assert.Error(t, sweepOnce(new(bytes.Buffer), store, 0))
}

func TestSweepCommandFlags(t *testing.T) {
	cmd, _, err := NewRootCmd().Find([]string{"sweep"})
	require.NoError(t, err)
	assert.NotNil(t, cmd.Flags().Lookup("max-age"))
}
