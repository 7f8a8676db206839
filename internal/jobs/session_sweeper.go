package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"myaccount/internal/metrics"
)

const DefaultSweepInterval = 30 * time.Second

// Sweeper drops expired sessions and returns how many it removed
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SessionSweeper periodically removes idle page sessions and keeps the
// active-session gauge in step with them
type SessionSweeper struct {
	store    Sweeper
	interval time.Duration
	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(store Sweeper, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SessionSweeper{
		store:    store,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins the background sweep loop. It stops on Stop or when ctx is done.
func (j *SessionSweeper) Start(ctx context.Context) {
	slog.Info("Starting session sweeper", "check_interval", j.interval.String())

	j.ticker = time.NewTicker(j.interval)

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		for {
			select {
			case <-j.ticker.C:
				j.sweep(ctx)
			case <-ctx.Done():
				slog.Info("Session sweeper stopped", "reason", ctx.Err())
				return
			case <-j.done:
				slog.Info("Session sweeper stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job and waits for the loop to exit
func (j *SessionSweeper) Stop() {
	j.stopOnce.Do(func() {
		if j.ticker != nil {
			j.ticker.Stop()
		}
		close(j.done)
	})
	j.wg.Wait()
}

func (j *SessionSweeper) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.interval)
	defer cancel()

	removed, err := j.store.Sweep(ctx)
	if err != nil {
		slog.Error("Failed to sweep sessions", "error", err)
		return
	}
	if removed == 0 {
		slog.Debug("No expired sessions found")
		return
	}
	metrics.SessionsExpired(removed)
	slog.Info("Expired sessions removed", "count", removed)
}
