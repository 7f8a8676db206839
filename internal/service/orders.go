package service

import (
	"context"
	"fmt"

	"myaccount/internal/account"
	"myaccount/internal/models"
)

func (s *AccountService) Orders(ctx context.Context, sessionID string) (*models.OrdersView, error) {
	return s.ordersTransition(ctx, sessionID, "", nil)
}

func (s *AccountService) SetOrderFilter(ctx context.Context, sessionID, status string) (*models.OrdersView, error) {
	return s.ordersTransition(ctx, sessionID, "set_filter", func(st *account.State, _ []models.Order) error {
		if err := st.SetFilter(status); err != nil {
			return fmt.Errorf("unknown status filter %q: %w", status, err)
		}
		return nil
	})
}

// ToggleTicketSection flips one details/segments/passengers block of a ticket
func (s *AccountService) ToggleTicketSection(ctx context.Context, sessionID, orderID string, ticketIndex int, section string) (*models.OrdersView, error) {
	return s.ordersTransition(ctx, sessionID, "toggle_section", func(st *account.State, orders []models.Order) error {
		if err := st.ToggleSection(orders, orderID, ticketIndex, section); err != nil {
			return fmt.Errorf("failed to toggle %s of %s/%d: %w", section, orderID, ticketIndex, err)
		}
		return nil
	})
}

func (s *AccountService) ordersTransition(ctx context.Context, sessionID, name string, fn func(*account.State, []models.Order) error) (*models.OrdersView, error) {
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	var view models.OrdersView
	run := func(st *account.State) error {
		if fn != nil {
			if err := fn(st, orders); err != nil {
				return err
			}
		}
		view = st.OrdersView(orders)
		return nil
	}

	if name == "" {
		err = s.sessions.Update(ctx, sessionID, run)
	} else {
		err = s.apply(ctx, sessionID, name, run)
	}
	if err != nil {
		return nil, err
	}
	return &view, nil
}
