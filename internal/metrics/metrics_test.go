package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	before := testutil.ToFloat64(transitionsTotal.WithLabelValues("select_tab", OutcomeOK))
	Transition("select_tab", OutcomeOK)
	assert.Equal(t, before+1, testutil.ToFloat64(transitionsTotal.WithLabelValues("select_tab", OutcomeOK)))
}

func TestEventPublished_SplitsByResult(t *testing.T) {
	okBefore := testutil.ToFloat64(eventsPublished.WithLabelValues("card.added", "ok"))
	errBefore := testutil.ToFloat64(eventsPublished.WithLabelValues("card.added", "error"))

	EventPublished("card.added", nil)
	EventPublished("card.added", errors.New("down"))
	EventPublished("card.added", errors.New("down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(eventsPublished.WithLabelValues("card.added", "ok")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(eventsPublished.WithLabelValues("card.added", "error")))
}

func TestSessionsGauge(t *testing.T) {
	before := testutil.ToFloat64(SessionsActive)
	SessionMounted()
	SessionMounted()
	SessionUnmounted()
	assert.Equal(t, before+1, testutil.ToFloat64(SessionsActive))
}

func TestSessionsExpired(t *testing.T) {
	before := testutil.ToFloat64(sessionsExpired)
	activeBefore := testutil.ToFloat64(SessionsActive)
	SessionsExpired(3)
	SessionsExpired(0)
	assert.Equal(t, before+3, testutil.ToFloat64(sessionsExpired))
	assert.Equal(t, activeBefore-3, testutil.ToFloat64(SessionsActive), "expired sessions leave the active gauge")
}

func TestEventDropped(t *testing.T) {
	before := testutil.ToFloat64(eventsConsumed.WithLabelValues("review.submitted", "dropped"))
	EventDropped("review.submitted")
	assert.Equal(t, before+1, testutil.ToFloat64(eventsConsumed.WithLabelValues("review.submitted", "dropped")))
}
