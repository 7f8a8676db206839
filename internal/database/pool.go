package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Health is what /health reports about the orders database
type Health struct {
	Status         string   `json:"status"`
	ResponseTimeMS int64    `json:"response_time_ms"`
	OpenConns      int      `json:"open_connections"`
	InUse          int      `json:"in_use"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
}

func (db *DB) HealthCheck(ctx context.Context) Health {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := db.PingContext(pingCtx)
	stats := db.Stats()

	health := Health{
		Status:         "healthy",
		ResponseTimeMS: time.Since(start).Milliseconds(),
		OpenConns:      stats.OpenConnections,
		InUse:          stats.InUse,
	}
	if err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
		slog.Error("Database health check failed", "error", err)
		return health
	}

	health.Warnings = poolPressure(stats)
	for _, w := range health.Warnings {
		slog.Warn("Database pool pressure", "warning", w, "in_use", stats.InUse, "max_open", stats.MaxOpenConnections)
	}
	return health
}

// poolPressure flags a nearly exhausted pool and long waits for a connection
func poolPressure(stats sql.DBStats) []string {
	var warnings []string
	if stats.MaxOpenConnections > 0 && stats.InUse > stats.MaxOpenConnections*9/10 {
		warnings = append(warnings, "high connection usage")
	}
	if stats.WaitCount > 0 && stats.WaitDuration > time.Second {
		warnings = append(warnings, "high wait times")
	}
	return warnings
}

// QueryWithRetry retries a read on connection-level failures only
func (db *DB) QueryWithRetry(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	const maxRetries = 3
	const backoffDelay = 100 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		rows, err := db.QueryContext(ctx, query, args...)
		if err == nil {
			return rows, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return nil, fmt.Errorf("non-retryable error on attempt %d: %w", attempt, err)
		}

		if attempt < maxRetries {
			slog.Warn("Database query failed, retrying",
				"attempt", attempt, "max_retries", maxRetries, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * backoffDelay):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d attempts: %w", maxRetries, lastErr)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// SQLSTATE class 08: connection exception
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"timeout",
		"driver: bad connection",
	}

	for _, retryable := range retryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}

	return false
}
