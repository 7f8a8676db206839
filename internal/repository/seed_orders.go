package repository

import (
	"context"

	"myaccount/internal/models"
)

// SeedOrderRepository serves the same fixed order list to every user
type SeedOrderRepository struct {
	orders []models.Order
}

func NewSeedOrderRepository(orders []models.Order) *SeedOrderRepository {
	return &SeedOrderRepository{orders: orders}
}

func (r *SeedOrderRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	out := make([]models.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}
