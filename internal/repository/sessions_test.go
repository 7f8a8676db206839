package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"myaccount/internal/account"
	apperrors "myaccount/internal/errors"
	"myaccount/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newState(t *testing.T) *account.State {
	t.Helper()
	s, err := account.New(models.ProfileData{Email: "a@b.com"}, []models.PaymentCard{{ID: 1, IsPrimary: true}}, "", time.Now())
	require.NoError(t, err)
	return s
}

func TestMemorySessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)

	id, err := store.Create(ctx, newState(t))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, store.Len())

	err = store.Update(ctx, id, func(s *account.State) error {
		return s.SelectTab("payment-methods")
	})
	require.NoError(t, err)

	var tab account.Tab
	require.NoError(t, store.Update(ctx, id, func(s *account.State) error {
		tab = s.Tab
		return nil
	}))
	assert.Equal(t, account.TabPaymentMethods, tab)

	require.NoError(t, store.Delete(ctx, id))
	assert.ErrorIs(t, store.Delete(ctx, id), apperrors.ErrSessionNotFound)
	assert.ErrorIs(t, store.Update(ctx, id, func(*account.State) error { return nil }), apperrors.ErrSessionNotFound)
}

func TestMemorySessionStore_KeepsStateWhenFnFails(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)
	id, err := store.Create(ctx, newState(t))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Update(ctx, id, func(s *account.State) error {
		s.OpenPassword()
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, store.Update(ctx, id, func(s *account.State) error {
		assert.True(t, s.Password.Open)
		return nil
	}))
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	id, err := store.Create(ctx, newState(t))
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Update(ctx, id, func(*account.State) error { return nil }))

	now = now.Add(50 * time.Second)
	require.NoError(t, store.Update(ctx, id, func(*account.State) error { return nil }), "update slides the expiry")

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, store.Update(ctx, id, func(*account.State) error { return nil }), apperrors.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, id), apperrors.ErrSessionNotFound)
	assert.Equal(t, 1, store.Len(), "expired sessions wait for the sweeper")

	_, err = store.Create(ctx, newState(t))
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, store.Len())

	removed, err = store.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMemorySessionStore_SlowTransitionBlocksOnlyItsSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)
	slow, err := store.Create(ctx, newState(t))
	require.NoError(t, err)
	other, err := store.Create(ctx, newState(t))
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- store.Update(ctx, slow, func(*account.State) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	finished := make(chan error, 1)
	go func() {
		finished <- store.Update(ctx, other, func(s *account.State) error { return s.SelectTab("personal-data") })
	}()

	select {
	case err := <-finished:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("update of another session waited for the slow transition")
	}

	close(release)
	require.NoError(t, <-done)
}

func TestMemorySessionStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)
	id, err := store.Create(ctx, newState(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, id, func(s *account.State) error {
				s.Expanded.Toggle(account.ExpandKey{OrderID: "ORD-1", Section: account.SectionDetails})
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, store.Update(ctx, id, func(s *account.State) error {
		assert.True(t, s.Expanded.IsExpanded(account.ExpandKey{OrderID: "ORD-1", Section: account.SectionDetails}), "even number of toggles")
		return nil
	}))
}

func TestSeedOrderRepository_ReturnsCopy(t *testing.T) {
	orders := []models.Order{{ID: "ORD-1", Status: models.OrderStatusUpcoming}}
	repo := NewSeedOrderRepository(orders)

	got, err := repo.ListByUserID(context.Background(), 1)
	require.NoError(t, err)
	got[0].Status = models.OrderStatusCancelled

	assert.Equal(t, models.OrderStatusUpcoming, orders[0].Status)
}
