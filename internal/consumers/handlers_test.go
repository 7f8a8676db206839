package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myaccount/internal/models"
)

type fakeReviews struct {
	stored   []models.ReviewSubmittedEvent
	payloads [][]byte
	err      error
}

func (f *fakeReviews) Create(ctx context.Context, review *models.ReviewSubmittedEvent, payload []byte) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.stored = append(f.stored, *review)
	f.payloads = append(f.payloads, payload)
	return int64(len(f.stored)), nil
}

type activityRow struct {
	userID int64
	kind   string
	at     time.Time
}

type fakeActivity struct {
	rows []activityRow
}

func (f *fakeActivity) Record(ctx context.Context, userID int64, kind string, payload []byte, occurredAt time.Time) error {
	f.rows = append(f.rows, activityRow{userID: userID, kind: kind, at: occurredAt})
	return nil
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestHandleReviewSubmitted(t *testing.T) {
	reviews, activity := &fakeReviews{}, &fakeActivity{}
	h := NewHandlers(reviews, activity)
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	data := mustJSON(t, models.ReviewSubmittedEvent{
		UserID:       1,
		FlightNumber: "RO301",
		Route:        "OTP → CDG",
		Rating:       4,
		Comment:      "Echipaj foarte amabil",
		Timestamp:    at,
	})
	require.NoError(t, h.HandleReviewSubmitted(context.Background(), data))

	require.Len(t, reviews.stored, 1)
	assert.Equal(t, "RO301", reviews.stored[0].FlightNumber)
	assert.Equal(t, at, reviews.stored[0].Timestamp)
	assert.JSONEq(t, string(data), string(reviews.payloads[0]), "the audit row is written with the review")
	assert.Empty(t, activity.rows, "no second write outside the review transaction")
}

func TestHandleReviewSubmitted_MalformedIsPermanent(t *testing.T) {
	reviews := &fakeReviews{}
	h := NewHandlers(reviews, &fakeActivity{})
	ctx := context.Background()

	for name, data := range map[string][]byte{
		"not json":       []byte("not json"),
		"rating too big": mustJSON(t, models.ReviewSubmittedEvent{FlightNumber: "RO301", Rating: 9}),
		"no flight":      mustJSON(t, models.ReviewSubmittedEvent{Rating: 3}),
		"empty review":   []byte(`{"flight_number":"","rating":0}`),
	} {
		t.Run(name, func(t *testing.T) {
			err := h.HandleReviewSubmitted(ctx, data)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
	assert.Empty(t, reviews.stored)
}

func TestHandleReviewSubmitted_StoreFailureIsTransient(t *testing.T) {
	activity := &fakeActivity{}
	h := NewHandlers(&fakeReviews{err: errors.New("db down")}, activity)

	err := h.HandleReviewSubmitted(context.Background(), mustJSON(t, models.ReviewSubmittedEvent{FlightNumber: "RO301", Rating: 5}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformed)
	assert.Empty(t, activity.rows)
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name string
		err  error
		ack  bool
	}{
		{"processed", nil, true},
		{"malformed is dropped", fmt.Errorf("%w: bad rating", ErrMalformed), true},
		{"transient is redelivered", errors.New("db down"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ack, settle(models.EventReviewSubmitted, 42, false, tt.err))
		})
	}
}

func TestHandleActivity(t *testing.T) {
	activity := &fakeActivity{}
	h := NewHandlers(&fakeReviews{}, activity)

	handler := h.HandleActivity(models.EventCardDeleted)
	require.NoError(t, handler(context.Background(), mustJSON(t, models.CardDeletedEvent{UserID: 7, CardID: 2})))

	require.Len(t, activity.rows, 1)
	assert.Equal(t, int64(7), activity.rows[0].userID)
	assert.Equal(t, models.EventCardDeleted, activity.rows[0].kind)
	assert.False(t, activity.rows[0].at.IsZero(), "a missing timestamp falls back to now")

	assert.ErrorIs(t, handler(context.Background(), []byte("{")), ErrMalformed)
}

func TestSubjects_CoverEveryAccountEvent(t *testing.T) {
	h := NewHandlers(&fakeReviews{}, &fakeActivity{})
	subjects := h.Subjects()

	for _, s := range []string{
		models.EventReviewSubmitted,
		models.EventProfileUpdated,
		models.EventPasswordChanged,
		models.EventCardAdded,
		models.EventCardDeleted,
		models.EventCardPrimaryChanged,
	} {
		assert.Contains(t, subjects, s)
	}
}
