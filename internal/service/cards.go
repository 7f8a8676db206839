package service

import (
	"context"
	"fmt"

	"myaccount/internal/account"
	"myaccount/internal/models"
)

func (s *AccountService) PaymentMethods(ctx context.Context, sessionID string) (*models.PaymentMethodsView, error) {
	var view *models.PaymentMethodsView
	err := s.sessions.Update(ctx, sessionID, func(st *account.State) error {
		v := st.PaymentMethodsView()
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *AccountService) SetPrimaryCard(ctx context.Context, sessionID string, cardID int64) (*models.PaymentMethodsView, error) {
	changed := false
	view, err := s.cardsTransition(ctx, sessionID, "set_primary_card", func(st *account.State) error {
		if err := st.SetPrimaryCard(cardID); err != nil {
			return fmt.Errorf("card %d: %w", cardID, err)
		}
		changed = true
		return nil
	})

	if err == nil && changed {
		s.publish(ctx, models.EventCardPrimaryChanged, models.CardPrimaryChangedEvent{
			UserID:    s.seed.UserID,
			CardID:    cardID,
			Timestamp: s.now(),
		})
	}
	return view, err
}

// ExpiryOptions lists the months and years the add-card form offers
func (s *AccountService) ExpiryOptions(ctx context.Context, sessionID string) (*models.ExpiryOptionsResponse, error) {
	var resp *models.ExpiryOptionsResponse
	err := s.sessions.Update(ctx, sessionID, func(st *account.State) error {
		resp = &models.ExpiryOptionsResponse{
			Months: append([]string(nil), st.Expiry.Months...),
			Years:  append([]string(nil), st.Expiry.Years...),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *AccountService) OpenAddCard(ctx context.Context, sessionID string) (*models.PaymentMethodsView, error) {
	return s.cardsTransition(ctx, sessionID, "open_add_card", func(st *account.State) error {
		st.OpenAddCard()
		return nil
	})
}

func (s *AccountService) ChangeCardDraft(ctx context.Context, sessionID string, req *models.CardDraftRequest) (*models.PaymentMethodsView, error) {
	return s.cardsTransition(ctx, sessionID, "change_card", func(st *account.State) error {
		return st.ChangeCard(account.CardChange{
			CardName:    req.CardName,
			CardNumber:  req.CardNumber,
			ExpiryMonth: req.ExpiryMonth,
			ExpiryYear:  req.ExpiryYear,
			CVV:         req.CVV,
		})
	})
}

func (s *AccountService) SubmitCard(ctx context.Context, sessionID string) (*models.PaymentMethodsView, error) {
	var added *models.PaymentCard
	view, err := s.cardsTransition(ctx, sessionID, "submit_card", func(st *account.State) error {
		card, res, err := st.SubmitCard()
		if err != nil {
			return err
		}
		if !res.OK() {
			return invalid("card", res)
		}
		added = &card
		return nil
	})

	if err == nil && added != nil {
		s.publish(ctx, models.EventCardAdded, models.CardAddedEvent{
			UserID:    s.seed.UserID,
			Card:      *added,
			Timestamp: s.now(),
		})
	}
	return view, err
}

func (s *AccountService) CloseAddCard(ctx context.Context, sessionID string) (*models.PaymentMethodsView, error) {
	return s.cardsTransition(ctx, sessionID, "close_add_card", func(st *account.State) error {
		st.CloseAddCard()
		return nil
	})
}

func (s *AccountService) RequestCardDeletion(ctx context.Context, sessionID string, cardID int64) (*models.PaymentMethodsView, error) {
	return s.cardsTransition(ctx, sessionID, "request_card_deletion", func(st *account.State) error {
		if err := st.RequestCardDeletion(cardID); err != nil {
			return fmt.Errorf("card %d: %w", cardID, err)
		}
		return nil
	})
}

func (s *AccountService) ConfirmCardDeletion(ctx context.Context, sessionID string) (*models.PaymentMethodsView, error) {
	var deleted *int64
	view, err := s.cardsTransition(ctx, sessionID, "confirm_card_deletion", func(st *account.State) error {
		id, err := st.ConfirmCardDeletion()
		if err != nil {
			return err
		}
		deleted = &id
		return nil
	})

	if err == nil && deleted != nil {
		s.publish(ctx, models.EventCardDeleted, models.CardDeletedEvent{
			UserID:    s.seed.UserID,
			CardID:    *deleted,
			Timestamp: s.now(),
		})
	}
	return view, err
}

func (s *AccountService) CancelCardDeletion(ctx context.Context, sessionID string) (*models.PaymentMethodsView, error) {
	return s.cardsTransition(ctx, sessionID, "cancel_card_deletion", func(st *account.State) error {
		st.CancelCardDeletion()
		return nil
	})
}

func (s *AccountService) cardsTransition(ctx context.Context, sessionID, name string, fn func(*account.State) error) (*models.PaymentMethodsView, error) {
	var view *models.PaymentMethodsView
	err := s.apply(ctx, sessionID, name, func(st *account.State) error {
		err := fn(st)
		v := st.PaymentMethodsView()
		view = &v
		return err
	})
	return view, err
}
