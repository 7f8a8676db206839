package account

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myaccount/internal/models"
)

func TestOrdersView_CountsAndExpandState(t *testing.T) {
	orders := testOrders()
	s := newTestState(t)
	require.NoError(t, s.SetFilter("upcoming"))
	require.NoError(t, s.ToggleSection(orders, "ORD-1", 0, "passengers"))

	view := s.OrdersView(orders)

	wantCounts := map[string]int{"all": 5, "upcoming": 2, "completed": 2, "cancelled": 1}
	if diff := cmp.Diff(wantCounts, view.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, view.Empty)
	require.Len(t, view.Orders, 2)
	assert.Equal(t, "ORD-1", view.Orders[0].ID)

	first := view.Orders[0].Tickets[0]
	assert.Equal(t, "Flex", first.FareType)
	assert.True(t, first.DetailsExpanded)
	assert.True(t, first.SegmentsExpanded)
	assert.False(t, first.PassengersExpanded)

	second := view.Orders[0].Tickets[1]
	assert.Equal(t, 1, second.Index)
	assert.True(t, second.PassengersExpanded)
	assert.Len(t, second.Transits, 1)
}

func TestOrdersView_EmptyState(t *testing.T) {
	orders := []models.Order{{ID: "ORD-9", Status: models.OrderStatusCompleted}}
	s := newTestState(t)
	require.NoError(t, s.SetFilter("cancelled"))

	view := s.OrdersView(orders)
	assert.True(t, view.Empty)
	assert.Equal(t, EmptyOrdersMessage, view.EmptyMessage)
	assert.NotNil(t, view.Orders)
	assert.Empty(t, view.Orders)
	assert.Equal(t, 1, view.Counts["completed"])
}

func TestPageView_SectionFollowsTab(t *testing.T) {
	s := newTestState(t)

	page := s.PageView(testOrders())
	assert.Equal(t, "orders", page.Tab)
	assert.IsType(t, models.OrdersView{}, page.Section)

	require.NoError(t, s.SelectTab("personal-data"))
	assert.IsType(t, models.ProfileView{}, s.PageView(nil).Section)

	require.NoError(t, s.SelectTab("payment-methods"))
	require.NoError(t, s.RequestCardDeletion(3))
	page = s.PageView(nil)
	assert.True(t, page.ScrollLocked)
	assert.Equal(t, models.ModalFlags{DeleteCard: true}, page.Modals)

	pm, ok := page.Section.(models.PaymentMethodsView)
	require.True(t, ok)
	require.NotNil(t, pm.DeleteCard.PendingCardID)
	assert.Equal(t, int64(3), *pm.DeleteCard.PendingCardID)
}

func TestPaymentMethodsView_IsACopy(t *testing.T) {
	s := newTestState(t)
	view := s.PaymentMethodsView()
	view.Cards[0].IsPrimary = false
	assert.True(t, s.Cards[0].IsPrimary)
}

func TestProfileView_ShowsDraftWhileEditing(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.EditProfile())
	require.NoError(t, s.ChangeProfile(ProfileChange{FirstName: str("Maria")}))

	view := s.ProfileView()
	assert.Equal(t, "editing", view.Mode)
	assert.Equal(t, "Maria", view.Data.FirstName)
	assert.NotNil(t, view.Errors)
}
