package repository

import (
	"context"

	"myaccount/internal/account"
	"myaccount/internal/database"
	"myaccount/internal/models"
)

// OrderSource supplies a user's order history. It is read-only.
type OrderSource interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.Order, error)
}

// SessionStore keeps one account.State per mounted page
type SessionStore interface {
	Create(ctx context.Context, state *account.State) (string, error)
	// Update runs fn on the session's state and stores the result, even when fn
	// returns an error, so validation flags set by a failed submit are kept.
	Update(ctx context.Context, id string, fn func(*account.State) error) error
	Delete(ctx context.Context, id string) error
	// Sweep drops sessions that expired without an unmount and reports how many
	// this instance lost, so the active-session gauge can follow.
	Sweep(ctx context.Context) (int, error)
	Close() error
}

type Repositories struct {
	Orders   OrderSource
	Sessions SessionStore
}

// NewRepositories wires the seed order source and the in-memory session store
func NewRepositories(orders []models.Order, sessions SessionStore) *Repositories {
	return &Repositories{
		Orders:   NewSeedOrderRepository(orders),
		Sessions: sessions,
	}
}

// NewRepositoriesWithDatabase reads orders from Postgres instead of the seed
func NewRepositoriesWithDatabase(db *database.DB, sessions SessionStore) *Repositories {
	return &Repositories{
		Orders:   NewOrderRepository(db),
		Sessions: sessions,
	}
}
