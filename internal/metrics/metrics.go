package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_transitions_total",
		Help: "Account page transitions by name and outcome",
	}, []string{"transition", "outcome"})

	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_validation_failures_total",
		Help: "Submits blocked by validation, by form",
	}, []string{"form"})

	// SessionsActive is exported for tests that assert on the live session count
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "account_sessions_active",
		Help: "Page sessions mounted by this instance and not yet unmounted or expired",
	})

	sessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "account_sessions_expired_total",
		Help: "Idle page sessions dropped by the sweeper",
	})

	eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_events_published_total",
		Help: "Account events handed to the broker, by subject and result",
	}, []string{"subject", "result"})

	eventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_events_consumed_total",
		Help: "Account events processed by the consumers, by subject and result (ok, error, dropped)",
	}, []string{"subject", "result"})
)

func Transition(name, outcome string) {
	transitionsTotal.WithLabelValues(name, outcome).Inc()
}

func ValidationFailed(form string) {
	validationFailures.WithLabelValues(form).Inc()
}

func SessionMounted() {
	SessionsActive.Inc()
}

func SessionUnmounted() {
	SessionsActive.Dec()
}

// SessionsExpired records sessions removed by the sweeper instead of an unmount
func SessionsExpired(n int) {
	if n <= 0 {
		return
	}
	sessionsExpired.Add(float64(n))
	SessionsActive.Sub(float64(n))
}

func EventPublished(subject string, err error) {
	eventsPublished.WithLabelValues(subject, result(err)).Inc()
}

func EventConsumed(subject string, err error) {
	eventsConsumed.WithLabelValues(subject, result(err)).Inc()
}

// EventDropped counts a consumed message that was acknowledged without processing
func EventDropped(subject string) {
	eventsConsumed.WithLabelValues(subject, "dropped").Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
