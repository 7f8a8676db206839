package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/stan.go"

	"myaccount/internal/metrics"
	"myaccount/internal/models"
)

// ErrMalformed marks a message that can never be processed. Such messages are
// acknowledged and dropped instead of being redelivered.
var ErrMalformed = errors.New("malformed event")

// ReviewSink persists submitted flight reviews together with their audit row
type ReviewSink interface {
	Create(ctx context.Context, review *models.ReviewSubmittedEvent, payload []byte) (int64, error)
}

// ActivitySink records account changes for the audit trail
type ActivitySink interface {
	Record(ctx context.Context, userID int64, kind string, payload []byte, occurredAt time.Time) error
}

// HandlerFunc processes one message body. A nil error acknowledges the message.
type HandlerFunc func(ctx context.Context, data []byte) error

type Handlers struct {
	reviews  ReviewSink
	activity ActivitySink
}

func NewHandlers(reviews ReviewSink, activity ActivitySink) *Handlers {
	return &Handlers{
		reviews:  reviews,
		activity: activity,
	}
}

func (h *Handlers) HandleReviewSubmitted(ctx context.Context, data []byte) error {
	var event models.ReviewSubmittedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("%w: review submitted: %v", ErrMalformed, err)
	}
	if event.FlightNumber == "" || event.Rating < 1 || event.Rating > 5 {
		return fmt.Errorf("%w: review for flight %q with rating %d", ErrMalformed, event.FlightNumber, event.Rating)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	slog.Info("Processing review submitted event",
		"user_id", event.UserID,
		"flight_number", event.FlightNumber,
		"rating", event.Rating)

	id, err := h.reviews.Create(ctx, &event, data)
	if err != nil {
		return err
	}

	slog.Info("Review stored", "review_id", id, "flight_number", event.FlightNumber)
	return nil
}

// HandleActivity builds the audit handler for one account event subject
func (h *Handlers) HandleActivity(subject string) HandlerFunc {
	return func(ctx context.Context, data []byte) error {
		var envelope struct {
			UserID    int64     `json:"user_id"`
			Timestamp time.Time `json:"timestamp"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, subject, err)
		}

		slog.Info("Processing account event", "subject", subject, "user_id", envelope.UserID)
		return h.record(ctx, subject, envelope.UserID, envelope.Timestamp, data)
	}
}

func (h *Handlers) record(ctx context.Context, kind string, userID int64, at time.Time, payload []byte) error {
	if at.IsZero() {
		at = time.Now()
	}
	return h.activity.Record(ctx, userID, kind, payload, at)
}

// Subjects maps every consumed subject to its handler
func (h *Handlers) Subjects() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		models.EventReviewSubmitted:    h.HandleReviewSubmitted,
		models.EventProfileUpdated:     h.HandleActivity(models.EventProfileUpdated),
		models.EventPasswordChanged:    h.HandleActivity(models.EventPasswordChanged),
		models.EventCardAdded:          h.HandleActivity(models.EventCardAdded),
		models.EventCardDeleted:        h.HandleActivity(models.EventCardDeleted),
		models.EventCardPrimaryChanged: h.HandleActivity(models.EventCardPrimaryChanged),
	}
}

// msgHandler adapts fn to a manual-ack stan handler
func msgHandler(subject string, timeout time.Duration, fn HandlerFunc) stan.MsgHandler {
	return func(m *stan.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if !settle(subject, m.Sequence, m.Redelivered, fn(ctx, m.Data)) {
			return
		}
		if err := m.Ack(); err != nil {
			slog.Error("Failed to ack event", "subject", subject, "sequence", m.Sequence, "error", err)
		}
	}
}

// settle reports whether the message should be acknowledged. Transient failures
// stay unacknowledged so the server redelivers them after AckWait; malformed
// messages are acknowledged so they do not block the durable queue.
func settle(subject string, sequence uint64, redelivered bool, err error) bool {
	switch {
	case err == nil:
		metrics.EventConsumed(subject, nil)
		return true
	case errors.Is(err, ErrMalformed):
		metrics.EventDropped(subject)
		slog.Warn("Dropping malformed event",
			"subject", subject,
			"sequence", sequence,
			"error", err)
		return true
	default:
		metrics.EventConsumed(subject, err)
		slog.Error("Failed to process event",
			"subject", subject,
			"sequence", sequence,
			"redelivered", redelivered,
			"error", err)
		return false
	}
}
