package account

import (
	"strings"

	apperrors "myaccount/internal/errors"
	"myaccount/internal/models"
	"myaccount/internal/validation"
)

// AddCardDialog is the add-card modal
type AddCardDialog struct {
	Open   bool                `json:"open"`
	Draft  models.CardDraft    `json:"draft"`
	Errors validation.FieldSet `json:"errors"`
}

// DeleteDialog is the delete confirmation modal. PendingID is set only while it is open.
type DeleteDialog struct {
	Open      bool   `json:"open"`
	PendingID *int64 `json:"pending_id,omitempty"`
}

// CardChange carries the fields a single change event touched
type CardChange struct {
	CardName    *string
	CardNumber  *string
	ExpiryMonth *string
	ExpiryYear  *string
	CVV         *string
}

// SetPrimaryCard rewrites every card's primary flag so that only id is primary
func (s *State) SetPrimaryCard(id int64) error {
	if s.cardIndex(id) < 0 {
		return apperrors.ErrNotFound
	}
	for i := range s.Cards {
		s.Cards[i].IsPrimary = s.Cards[i].ID == id
	}
	return nil
}

func (s *State) OpenAddCard() {
	s.AddCard.Open = true
	s.syncScrollLock()
}

// ChangeCard edits the add-card draft and clears the touched field's flag
func (s *State) ChangeCard(c CardChange) error {
	if !s.AddCard.Open {
		return apperrors.ErrInvalidTransition
	}
	d := &s.AddCard.Draft
	set := func(dst *string, v *string, id validation.FieldID) {
		if v != nil {
			*dst = *v
			delete(s.AddCard.Errors, id)
		}
	}
	set(&d.CardName, c.CardName, validation.FieldCardName)
	set(&d.CardNumber, c.CardNumber, validation.FieldCardNumber)
	set(&d.ExpiryMonth, c.ExpiryMonth, validation.FieldExpiryMonth)
	set(&d.ExpiryYear, c.ExpiryYear, validation.FieldExpiryYear)
	set(&d.CVV, c.CVV, validation.FieldCVV)
	return nil
}

// SubmitCard validates the draft and, on success, appends the masked card and closes the dialog.
// The new card is primary only when it is the first one.
func (s *State) SubmitCard() (models.PaymentCard, validation.Result, error) {
	if !s.AddCard.Open {
		return models.PaymentCard{}, validation.Valid(), apperrors.ErrInvalidTransition
	}
	d := s.AddCard.Draft
	res := validation.ValidateCard(d, s.Expiry)
	if !res.OK() {
		s.AddCard.Errors = res.Fields()
		return models.PaymentCard{}, res, nil
	}

	number := validation.NormalizeCardNumber(d.CardNumber)
	card := models.PaymentCard{
		ID:           s.nextCardID(),
		MaskedNumber: MaskCardNumber(number),
		Expiry:       d.ExpiryMonth + "/" + d.ExpiryYear[len(d.ExpiryYear)-2:],
		IsPrimary:    len(s.Cards) == 0,
		Brand:        CardBrand(number),
		HolderName:   strings.TrimSpace(d.CardName),
	}
	s.Cards = append(s.Cards, card)
	s.CloseAddCard()
	return card, res, nil
}

func (s *State) CloseAddCard() {
	s.AddCard = AddCardDialog{}
	s.syncScrollLock()
}

// RequestCardDeletion remembers the card and opens the confirmation dialog
func (s *State) RequestCardDeletion(id int64) error {
	if s.cardIndex(id) < 0 {
		return apperrors.ErrNotFound
	}
	s.DeleteCard = DeleteDialog{Open: true, PendingID: &id}
	s.syncScrollLock()
	return nil
}

// ConfirmCardDeletion removes the pending card. A deleted primary is not replaced.
func (s *State) ConfirmCardDeletion() (int64, error) {
	if !s.DeleteCard.Open || s.DeleteCard.PendingID == nil {
		return 0, apperrors.ErrInvalidTransition
	}
	id := *s.DeleteCard.PendingID
	kept := make([]models.PaymentCard, 0, len(s.Cards))
	for _, c := range s.Cards {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.Cards = kept
	s.CancelCardDeletion()
	return id, nil
}

// CancelCardDeletion drops the pending id without touching the cards
func (s *State) CancelCardDeletion() {
	s.DeleteCard = DeleteDialog{}
	s.syncScrollLock()
}

// nextCardID is one past the largest id; it never duplicates an id still in the collection
func (s *State) nextCardID() int64 {
	var maxID int64
	for _, c := range s.Cards {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}

func (s *State) cardIndex(id int64) int {
	for i, c := range s.Cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// MaskCardNumber keeps only the last four digits
func MaskCardNumber(number string) string {
	last := number
	if len(number) > 4 {
		last = number[len(number)-4:]
	}
	return "**** **** **** " + last
}

// CardBrand guesses the network from the number prefix
func CardBrand(number string) string {
	if strings.HasPrefix(number, "4") {
		return "visa"
	}
	if len(number) >= 4 {
		p2 := number[:2]
		if p2 >= "51" && p2 <= "55" {
			return "mastercard"
		}
		p4 := number[:4]
		if p4 >= "2221" && p4 <= "2720" {
			return "mastercard"
		}
	}
	return "card"
}
