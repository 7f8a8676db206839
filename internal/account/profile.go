package account

import (
	apperrors "myaccount/internal/errors"
	"myaccount/internal/models"
	"myaccount/internal/validation"
)

// ProfileMode is the personal data form mode
type ProfileMode string

const (
	ModeViewing ProfileMode = "viewing"
	ModeEditing ProfileMode = "editing"
)

// ProfileForm holds committed personal data and, while editing, the draft
type ProfileForm struct {
	Mode      ProfileMode         `json:"mode"`
	Committed models.ProfileData  `json:"committed"`
	Draft     models.ProfileData  `json:"draft"`
	Errors    validation.FieldSet `json:"errors"`
}

// ProfileChange carries the fields a single change event touched
type ProfileChange struct {
	Email     *string
	Phone     *string
	FirstName *string
	LastName  *string
	Address   *string
}

// EditProfile enters edit mode with a draft copied from the committed data.
// Error flags from a previous attempt stay until the field changes.
func (s *State) EditProfile() error {
	if s.Profile.Mode != ModeViewing {
		return apperrors.ErrInvalidTransition
	}
	s.Profile.Mode = ModeEditing
	s.Profile.Draft = s.Profile.Committed
	return nil
}

// ChangeProfile applies a field edit to the draft and clears that field's error flag
func (s *State) ChangeProfile(c ProfileChange) error {
	if s.Profile.Mode != ModeEditing {
		return apperrors.ErrInvalidTransition
	}
	d := &s.Profile.Draft
	if c.Email != nil {
		d.Email = *c.Email
		s.clearProfileError(validation.FieldEmail)
	}
	if c.Phone != nil {
		d.Phone = *c.Phone
		s.clearProfileError(validation.FieldPhone)
	}
	if c.FirstName != nil {
		d.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		d.LastName = *c.LastName
	}
	if c.Address != nil {
		d.Address = *c.Address
	}
	return nil
}

func (s *State) clearProfileError(id validation.FieldID) {
	delete(s.Profile.Errors, id)
}

// SaveProfile validates the draft. On success the draft is committed and the form
// returns to viewing; on failure it stays in editing with the error flags set.
func (s *State) SaveProfile() (validation.Result, error) {
	if s.Profile.Mode != ModeEditing {
		return validation.Valid(), apperrors.ErrInvalidTransition
	}
	res := validation.ValidateProfile(s.Profile.Draft)
	if !res.OK() {
		s.Profile.Errors = res.Fields()
		return res, nil
	}
	s.Profile.Committed = s.Profile.Draft
	s.Profile.Draft = models.ProfileData{}
	s.Profile.Errors = nil
	s.Profile.Mode = ModeViewing
	return res, nil
}

// CancelProfileEdit drops the draft and any error flags
func (s *State) CancelProfileEdit() error {
	if s.Profile.Mode != ModeEditing {
		return apperrors.ErrInvalidTransition
	}
	s.Profile.Draft = models.ProfileData{}
	s.Profile.Errors = nil
	s.Profile.Mode = ModeViewing
	return nil
}
