package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	mu     sync.Mutex
	calls  int
	maxAge time.Duration
	err    error
}

func (f *fakeSweeper) Sweep(maxAge time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.maxAge = maxAge
	return 1, f.err
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestService_StartRunsImmediately(t *testing.T) {
	sweeper := &fakeSweeper{}
	svc := NewService(sweeper, time.Hour, "@every 1h", zerolog.Nop())

	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()

	assert.Equal(t, 1, sweeper.count())
	assert.Equal(t, time.Hour, sweeper.maxAge)
}

func TestService_RunsOnSchedule(t *testing.T) {
	sweeper := &fakeSweeper{}
	svc := NewService(sweeper, time.Minute, "@every 1s", zerolog.Nop())

	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()

	assert.Eventually(t, func() bool { return sweeper.count() >= 2 }, 5*time.Second, 50*time.Millisecond)
}

func TestService_InvalidSchedule(t *testing.T) {
	svc := NewService(&fakeSweeper{}, time.Hour, "not a schedule", zerolog.Nop())
	assert.Error(t, svc.Start(context.Background()))
}

func TestService_StopsWithContext(t *testing.T) {
	sweeper := &fakeSweeper{}
	svc := NewService(sweeper, time.Hour, "@every 1s", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Start(ctx))
	cancel()

	time.Sleep(100 * time.Millisecond)
	calls := sweeper.count()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, calls, sweeper.count())
}

func TestService_RunOnceError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("permission denied")}
	svc := NewService(sweeper, time.Hour, "@every 1h", zerolog.Nop())

	assert.NotPanics(t, svc.RunOnce)
	assert.Equal(t, 1, sweeper.count())
}
