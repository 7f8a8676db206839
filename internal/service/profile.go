package service

import (
	"context"

	"myaccount/internal/account"
	"myaccount/internal/models"
)

func (s *AccountService) Profile(ctx context.Context, sessionID string) (*models.ProfileView, error) {
	return s.profileTransition(ctx, sessionID, "", nil)
}

func (s *AccountService) EditProfile(ctx context.Context, sessionID string) (*models.ProfileView, error) {
	return s.profileTransition(ctx, sessionID, "edit_profile", func(st *account.State) error {
		return st.EditProfile()
	})
}

func (s *AccountService) ChangeProfile(ctx context.Context, sessionID string, req *models.ProfileDraftRequest) (*models.ProfileView, error) {
	return s.profileTransition(ctx, sessionID, "change_profile", func(st *account.State) error {
		return st.ChangeProfile(account.ProfileChange{
			Email:     req.Email,
			Phone:     req.Phone,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Address:   req.Address,
		})
	})
}

// SaveProfile commits the draft. A blocked save returns the view with its error
// flags together with a *ValidationError.
func (s *AccountService) SaveProfile(ctx context.Context, sessionID string) (*models.ProfileView, error) {
	var saved *models.ProfileData
	view, err := s.profileTransition(ctx, sessionID, "save_profile", func(st *account.State) error {
		res, err := st.SaveProfile()
		if err != nil {
			return err
		}
		if !res.OK() {
			return invalid("profile", res)
		}
		committed := st.Profile.Committed
		saved = &committed
		return nil
	})

	if err == nil && saved != nil {
		s.publish(ctx, models.EventProfileUpdated, models.ProfileUpdatedEvent{
			UserID:    s.seed.UserID,
			Profile:   *saved,
			Timestamp: s.now(),
		})
	}
	return view, err
}

func (s *AccountService) CancelProfileEdit(ctx context.Context, sessionID string) (*models.ProfileView, error) {
	return s.profileTransition(ctx, sessionID, "cancel_profile", func(st *account.State) error {
		return st.CancelProfileEdit()
	})
}

// profileTransition renders the view even when fn fails, so validation flags reach the caller
func (s *AccountService) profileTransition(ctx context.Context, sessionID, name string, fn func(*account.State) error) (*models.ProfileView, error) {
	var view *models.ProfileView
	run := func(st *account.State) error {
		var err error
		if fn != nil {
			err = fn(st)
		}
		v := st.ProfileView()
		view = &v
		return err
	}

	var err error
	if name == "" {
		err = s.sessions.Update(ctx, sessionID, run)
	} else {
		err = s.apply(ctx, sessionID, name, run)
	}
	return view, err
}
