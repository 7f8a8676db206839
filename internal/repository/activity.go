package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"myaccount/internal/database"
	"myaccount/internal/models"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ReviewRepository stores flight reviews handed over by the account page
type ReviewRepository struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores the review and its audit row in one transaction, so a redelivered
// message never finds half of it written.
func (r *ReviewRepository) Create(ctx context.Context, review *models.ReviewSubmittedEvent, payload []byte) (int64, error) {
	query := `
		INSERT INTO flight_reviews (user_id, flight_number, route, rating, comment, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			review.UserID,
			review.FlightNumber,
			review.Route,
			review.Rating,
			review.Comment,
			review.Timestamp,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}
		return insertActivity(ctx, tx, review.UserID, models.EventReviewSubmitted, payload, review.Timestamp)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ActivityRepository is the append-only audit trail of account changes
type ActivityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Record(ctx context.Context, userID int64, kind string, payload []byte, occurredAt time.Time) error {
	return insertActivity(ctx, r.db, userID, kind, payload, occurredAt)
}

func insertActivity(ctx context.Context, db execer, userID int64, kind string, payload []byte, occurredAt time.Time) error {
	query := `
		INSERT INTO account_activity (user_id, kind, payload, occurred_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := db.ExecContext(ctx, query, userID, kind, payload, occurredAt); err != nil {
		return fmt.Errorf("failed to record %s activity: %w", kind, err)
	}
	return nil
}
