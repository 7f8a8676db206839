package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledClient(t *testing.T) {
	nc, err := NewNATSClient(Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, nc.Connected())
	assert.NoError(t, nc.Publish("review.submitted", map[string]int{"rating": 5}))

	_, err = nc.SubscribeQueue("review.submitted", "q", nil)
	assert.ErrorIs(t, err, ErrNotConnected)

	assert.NoError(t, nc.Close())
}

func TestPublish_UnmarshalableData(t *testing.T) {
	nc, err := NewNATSClient(Config{})
	require.NoError(t, err)

	err = nc.Publish("x", make(chan int))
	assert.Error(t, err)
}
