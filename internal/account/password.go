package account

import (
	apperrors "myaccount/internal/errors"
	"myaccount/internal/models"
	"myaccount/internal/validation"
)

// PasswordDialog is the change-password modal
type PasswordDialog struct {
	Open   bool                 `json:"open"`
	Draft  models.PasswordDraft `json:"draft"`
	Errors validation.FieldSet  `json:"errors"`
}

// PasswordChange carries the fields a single change event touched
type PasswordChange struct {
	CurrentPassword *string
	NewPassword     *string
	ConfirmPassword *string
}

func (s *State) OpenPassword() {
	s.Password.Open = true
	s.syncScrollLock()
}

// ChangePassword edits the draft; the touched field's flags are cleared
func (s *State) ChangePassword(c PasswordChange) error {
	if !s.Password.Open {
		return apperrors.ErrInvalidTransition
	}
	d := &s.Password.Draft
	if c.CurrentPassword != nil {
		d.CurrentPassword = *c.CurrentPassword
		delete(s.Password.Errors, validation.FieldCurrentPassword)
		delete(s.Password.Errors, validation.FieldCurrentPasswordIncorrect)
	}
	if c.NewPassword != nil {
		d.NewPassword = *c.NewPassword
		delete(s.Password.Errors, validation.FieldNewPassword)
		delete(s.Password.Errors, validation.FieldPasswordMatch)
	}
	if c.ConfirmPassword != nil {
		d.ConfirmPassword = *c.ConfirmPassword
		delete(s.Password.Errors, validation.FieldConfirmPassword)
		delete(s.Password.Errors, validation.FieldPasswordMatch)
	}
	return nil
}

// SavePassword validates the draft. verify reports whether the given current password
// is the account's password. On success the dialog closes and the draft is dropped;
// on failure nothing is cleared.
func (s *State) SavePassword(verify func(current string) bool) (validation.Result, error) {
	if !s.Password.Open {
		return validation.Valid(), apperrors.ErrInvalidTransition
	}
	res := validation.ValidatePassword(s.Password.Draft, verify(s.Password.Draft.CurrentPassword))
	if !res.OK() {
		s.Password.Errors = res.Fields()
		return res, nil
	}
	s.ClosePassword()
	return res, nil
}

// ClosePassword always clears the draft and flags, valid or not
func (s *State) ClosePassword() {
	s.Password = PasswordDialog{}
	s.syncScrollLock()
}
