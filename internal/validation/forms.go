package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"myaccount/internal/models"
)

// ValidateProfile checks the personal data form
func ValidateProfile(p models.ProfileData) Result {
	var failed []FieldID
	if !IsValidEmail(p.Email) {
		failed = append(failed, FieldEmail)
	}
	if !IsValidPhone(p.Phone) {
		failed = append(failed, FieldPhone)
	}
	return Invalid(failed...)
}

// ValidatePassword evaluates every password rule on each attempt; none short-circuits.
// currentMatches is the credential check result for d.CurrentPassword.
func ValidatePassword(d models.PasswordDraft, currentMatches bool) Result {
	var failed []FieldID
	if strings.TrimSpace(d.CurrentPassword) == "" {
		failed = append(failed, FieldCurrentPassword)
	}
	if strings.TrimSpace(d.NewPassword) == "" {
		failed = append(failed, FieldNewPassword)
	}
	if strings.TrimSpace(d.ConfirmPassword) == "" {
		failed = append(failed, FieldConfirmPassword)
	}
	if d.NewPassword != d.ConfirmPassword {
		failed = append(failed, FieldPasswordMatch)
	}
	if !currentMatches {
		failed = append(failed, FieldCurrentPasswordIncorrect)
	}
	return Invalid(failed...)
}

// ExpiryOptions are the values the expiry selectors offer
type ExpiryOptions struct {
	Months []string `json:"months"`
	Years  []string `json:"years"`
}

// yearsAhead is how many years past the current one the year selector offers
const yearsAhead = 10

// NewExpiryOptions builds the month list 01..12 and the year list starting at now's year
func NewExpiryOptions(now time.Time) ExpiryOptions {
	months := make([]string, 12)
	for i := range months {
		months[i] = fmt.Sprintf("%02d", i+1)
	}
	years := make([]string, 0, yearsAhead+1)
	for y := now.Year(); y <= now.Year()+yearsAhead; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return ExpiryOptions{Months: months, Years: years}
}

// ValidateCard checks the add-card form against the offered expiry options
func ValidateCard(d models.CardDraft, opts ExpiryOptions) Result {
	var failed []FieldID
	if strings.TrimSpace(d.CardName) == "" {
		failed = append(failed, FieldCardName)
	}
	if !IsValidCardNumber(d.CardNumber) {
		failed = append(failed, FieldCardNumber)
	}
	if d.ExpiryMonth == "" || !contains(opts.Months, d.ExpiryMonth) {
		failed = append(failed, FieldExpiryMonth)
	}
	if d.ExpiryYear == "" || !contains(opts.Years, d.ExpiryYear) {
		failed = append(failed, FieldExpiryYear)
	}
	if !IsValidCVV(d.CVV) {
		failed = append(failed, FieldCVV)
	}
	return Invalid(failed...)
}
