package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myaccount/internal/models"
	"myaccount/internal/validation"
)

func TestOrders(t *testing.T) {
	orders, err := Orders()
	require.NoError(t, err)
	require.NotEmpty(t, orders)

	seen := map[string]bool{}
	for _, o := range orders {
		assert.False(t, seen[o.ID], "duplicate order id %s", o.ID)
		seen[o.ID] = true
		assert.Contains(t, models.OrderStatuses, o.Status)
		assert.NotEmpty(t, o.Tickets)
		assert.False(t, o.OrderDate.IsZero())
		for _, g := range o.Tickets {
			assert.NotEmpty(t, g.Passengers)
			assert.NotEmpty(t, g.Flight.FlightNumber)
		}
	}

	multiLeg := orders[1].Tickets[0]
	assert.Len(t, multiLeg.Transits, 2)
	assert.Equal(t, "Economy Classic", multiLeg.FareType())
}

func TestCards_SinglePrimary(t *testing.T) {
	cards, err := Cards()
	require.NoError(t, err)

	primary := 0
	for _, c := range cards {
		if c.IsPrimary {
			primary++
		}
	}
	assert.Equal(t, 1, primary)
}

func TestProfile_IsValid(t *testing.T) {
	p, err := Profile()
	require.NoError(t, err)
	assert.True(t, validation.ValidateProfile(p).OK())
}
