package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myaccount/internal/account"
	apperrors "myaccount/internal/errors"
	"myaccount/internal/logger"
	"myaccount/internal/metrics"
	"myaccount/internal/models"
	"myaccount/internal/repository"
	"myaccount/internal/validation"
)

type AccountService struct {
	orders    repository.OrderSource
	sessions  repository.SessionStore
	identity  CredentialVerifier
	publisher EventPublisher
	seed      AccountSeed
	now       func() time.Time
}

func NewAccountService(orders repository.OrderSource, sessions repository.SessionStore, identity CredentialVerifier, publisher EventPublisher, seed AccountSeed, now func() time.Time) *AccountService {
	return &AccountService{
		orders:    orders,
		sessions:  sessions,
		identity:  identity,
		publisher: publisher,
		seed:      seed,
		now:       now,
	}
}

// Mount creates a page session. tab is the optional deep-link target.
func (s *AccountService) Mount(ctx context.Context, tab string) (*models.CreateSessionResponse, error) {
	state, err := account.New(s.seed.Profile, s.seed.Cards, tab, s.now())
	if err != nil {
		metrics.Transition("mount", outcome(err))
		return nil, fmt.Errorf("unknown tab %q: %w", tab, err)
	}

	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.sessions.Create(ctx, state)
	if err != nil {
		metrics.Transition("mount", outcome(err))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	metrics.Transition("mount", metrics.OutcomeOK)
	metrics.SessionMounted()

	logger.WithContext(ctx).Info("Account page mounted", "session_id", id, "tab", state.Tab)

	return &models.CreateSessionResponse{
		SessionID: id,
		Page:      state.PageView(orders),
	}, nil
}

// Unmount releases the scroll lock and drops the session
func (s *AccountService) Unmount(ctx context.Context, sessionID string) error {
	err := s.apply(ctx, sessionID, "unmount", func(st *account.State) error {
		st.Close()
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	metrics.SessionUnmounted()
	return nil
}

func (s *AccountService) Page(ctx context.Context, sessionID string) (*models.PageView, error) {
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	var view models.PageView
	err = s.sessions.Update(ctx, sessionID, func(st *account.State) error {
		view = st.PageView(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *AccountService) SelectTab(ctx context.Context, sessionID, tab string) (*models.PageView, error) {
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	var view models.PageView
	err = s.apply(ctx, sessionID, "select_tab", func(st *account.State) error {
		if err := st.SelectTab(tab); err != nil {
			return fmt.Errorf("unknown tab %q: %w", tab, err)
		}
		view = st.PageView(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// apply runs one named transition on the session and records its outcome
func (s *AccountService) apply(ctx context.Context, sessionID, name string, fn func(*account.State) error) error {
	err := s.sessions.Update(ctx, sessionID, fn)
	metrics.Transition(name, outcome(err))

	var verr *apperrors.ValidationError
	switch {
	case err == nil:
		logger.WithContext(ctx).Debug("Transition applied", "session_id", sessionID, "transition", name)
	case errors.As(err, &verr):
		metrics.ValidationFailed(verr.Form)
		logger.WithContext(ctx).Info("Submit blocked by validation",
			"session_id", sessionID,
			"transition", name,
			"fields", verr.Fields)
	case isClientError(err):
		logger.WithContext(ctx).Info("Transition rejected",
			"session_id", sessionID,
			"transition", name,
			"error", err)
	default:
		logger.WithContext(ctx).Error("Transition failed",
			"session_id", sessionID,
			"transition", name,
			"error", err)
	}
	return err
}

func (s *AccountService) loadOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListByUserID(ctx, s.seed.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

// publish logs a failed publish but never fails the operation
func (s *AccountService) publish(ctx context.Context, subject string, data interface{}) {
	err := s.publisher.Publish(subject, data)
	metrics.EventPublished(subject, err)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to publish account event",
			"error", err,
			"event_type", subject,
			"user_id", s.seed.UserID)
	}
}

func invalid(form string, res validation.Result) error {
	return &apperrors.ValidationError{Form: form, Fields: res.Fields().Sorted()}
}

func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrSessionNotFound) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrInvalidTransition) ||
		errors.Is(err, apperrors.ErrBadInput)
}

func outcome(err error) string {
	var verr *apperrors.ValidationError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &verr):
		return metrics.OutcomeInvalid
	case isClientError(err):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
