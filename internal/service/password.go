package service

import (
	"context"
	"fmt"

	"myaccount/internal/account"
	"myaccount/internal/models"
)

func (s *AccountService) OpenPasswordDialog(ctx context.Context, sessionID string) (*models.PasswordView, error) {
	return s.passwordTransition(ctx, sessionID, "open_password", func(st *account.State) error {
		st.OpenPassword()
		return nil
	})
}

func (s *AccountService) ChangePassword(ctx context.Context, sessionID string, req *models.PasswordDraftRequest) (*models.PasswordView, error) {
	return s.passwordTransition(ctx, sessionID, "change_password", func(st *account.State) error {
		return st.ChangePassword(account.PasswordChange{
			CurrentPassword: req.CurrentPassword,
			NewPassword:     req.NewPassword,
			ConfirmPassword: req.ConfirmPassword,
		})
	})
}

// SavePassword checks the current password with the identity service, then validates
// the whole draft. The password itself is never published or logged.
func (s *AccountService) SavePassword(ctx context.Context, sessionID string) (*models.PasswordView, error) {
	changed := false
	view, err := s.passwordTransition(ctx, sessionID, "save_password", func(st *account.State) error {
		matches := false
		if st.Password.Open && st.Password.Draft.CurrentPassword != "" {
			ok, err := s.identity.Verify(ctx, s.seed.UserID, st.Password.Draft.CurrentPassword)
			if err != nil {
				return fmt.Errorf("failed to verify current password: %w", err)
			}
			matches = ok
		}

		res, err := st.SavePassword(func(string) bool { return matches })
		if err != nil {
			return err
		}
		if !res.OK() {
			return invalid("password", res)
		}
		changed = true
		return nil
	})

	if err == nil && changed {
		s.publish(ctx, models.EventPasswordChanged, models.PasswordChangedEvent{
			UserID:    s.seed.UserID,
			Timestamp: s.now(),
		})
	}
	return view, err
}

func (s *AccountService) ClosePasswordDialog(ctx context.Context, sessionID string) (*models.PasswordView, error) {
	return s.passwordTransition(ctx, sessionID, "close_password", func(st *account.State) error {
		st.ClosePassword()
		return nil
	})
}

func (s *AccountService) passwordTransition(ctx context.Context, sessionID, name string, fn func(*account.State) error) (*models.PasswordView, error) {
	var view *models.PasswordView
	err := s.apply(ctx, sessionID, name, func(st *account.State) error {
		err := fn(st)
		v := st.PasswordView()
		view = &v
		return err
	})
	return view, err
}
