package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"myaccount/internal/metrics"
)

type countingSweeper struct {
	calls   atomic.Int32
	removed int
	err     error
}

func (s *countingSweeper) Sweep(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return s.removed, s.err
}

func TestSessionSweeper_SweepsUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &countingSweeper{}
	job := NewSessionSweeper(store, 5*time.Millisecond)
	job.Start(context.Background())

	assert.Eventually(t, func() bool { return store.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	job.Stop()
	job.Stop()
	calls := store.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, store.calls.Load(), "no sweeps after Stop")
}

func TestSessionSweeper_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	job := NewSessionSweeper(&countingSweeper{}, time.Hour)
	job.Start(ctx)
	cancel()
	job.Stop()
}

func TestSessionSweeper_LowersActiveGauge(t *testing.T) {
	before := testutil.ToFloat64(metrics.SessionsActive)
	for i := 0; i < 4; i++ {
		metrics.SessionMounted()
	}

	job := NewSessionSweeper(&countingSweeper{removed: 4}, time.Minute)
	job.sweep(context.Background())
	assert.Equal(t, before, testutil.ToFloat64(metrics.SessionsActive))

	job = NewSessionSweeper(&countingSweeper{removed: 4, err: errors.New("valkey down")}, time.Minute)
	job.sweep(context.Background())
	assert.Equal(t, before, testutil.ToFloat64(metrics.SessionsActive), "a failed sweep changes nothing")
}

func TestNewSessionSweeper_DefaultInterval(t *testing.T) {
	job := NewSessionSweeper(&countingSweeper{}, 0)
	assert.Equal(t, DefaultSweepInterval, job.interval)
}
