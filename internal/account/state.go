// Package account holds the state of one mounted account page and the named
// transitions that are the only way to mutate it.
package account

import (
	"time"

	apperrors "myaccount/internal/errors"
	"myaccount/internal/models"
	"myaccount/internal/validation"
)

// Tab identifies the visible section of the page
type Tab string

const (
	TabOrders         Tab = "orders"
	TabPersonalData   Tab = "personal-data"
	TabPaymentMethods Tab = "payment-methods"
)

// ParseTab maps a raw tab value to a Tab
func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabOrders, TabPersonalData, TabPaymentMethods:
		return Tab(s), true
	}
	return "", false
}

// State is the single aggregate behind an account page. Exported fields exist so the
// session store can snapshot it; callers mutate it only through its methods.
type State struct {
	Tab          Tab                      `json:"tab"`
	Filter       StatusFilter             `json:"filter"`
	Expanded     ExpandFlags              `json:"expanded"`
	Profile      ProfileForm              `json:"profile"`
	Password     PasswordDialog           `json:"password"`
	AddCard      AddCardDialog            `json:"add_card"`
	DeleteCard   DeleteDialog             `json:"delete_card"`
	Review       ReviewDialog             `json:"review"`
	Cards        []models.PaymentCard     `json:"cards"`
	Expiry       validation.ExpiryOptions `json:"expiry"`
	ScrollLocked bool                     `json:"scroll_locked"`
}

// New mounts a page. An empty initialTab selects the orders tab.
func New(profile models.ProfileData, cards []models.PaymentCard, initialTab string, now time.Time) (*State, error) {
	tab := TabOrders
	if initialTab != "" {
		t, ok := ParseTab(initialTab)
		if !ok {
			return nil, apperrors.ErrBadInput
		}
		tab = t
	}

	owned := make([]models.PaymentCard, len(cards))
	copy(owned, cards)

	return &State{
		Tab:      tab,
		Filter:   FilterAll,
		Expanded: ExpandFlags{},
		Profile:  ProfileForm{Mode: ModeViewing, Committed: profile},
		Review:   ReviewDialog{Draft: models.ReviewDraft{Rating: DefaultRating}},
		Cards:    owned,
		Expiry:   validation.NewExpiryOptions(now),
	}, nil
}

// SelectTab swaps the visible section; drafts of other sections are untouched.
func (s *State) SelectTab(raw string) error {
	tab, ok := ParseTab(raw)
	if !ok {
		return apperrors.ErrBadInput
	}
	s.Tab = tab
	return nil
}

// AnyModalOpen is the logical OR of every dialog flag
func (s *State) AnyModalOpen() bool {
	return s.Password.Open || s.AddCard.Open || s.DeleteCard.Open || s.Review.Open
}

// syncScrollLock is reasserted after every modal flag change.
func (s *State) syncScrollLock() {
	s.ScrollLocked = s.AnyModalOpen()
}

// Close is the page teardown: the scroll lock is always released.
func (s *State) Close() {
	s.ScrollLocked = false
}
