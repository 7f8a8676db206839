package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"myaccount/internal/models"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"ion.popescu@example.ro", true},
		{"a@b", false},
		{"", false},
		{"   ", false},
		{"a b@c.com", false},
		{"@b.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.in), "email %q", tt.in)
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0712345678", true},
		{"0712 345 678", true},
		{"+40712345678", true},
		{"+40 712 345 678", true},
		{"0812345678", false},
		{"071234567", false},
		{"07123456789", false},
		{"+40812345678", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPhone(tt.in), "phone %q", tt.in)
	}
}

func TestValidateProfile(t *testing.T) {
	res := ValidateProfile(models.ProfileData{Email: "a@b.com", Phone: "0712345678"})
	assert.True(t, res.OK())

	res = ValidateProfile(models.ProfileData{Email: "a@b", Phone: "0812345678"})
	assert.False(t, res.OK())
	assert.Equal(t, []string{"email", "phone"}, res.Fields().Sorted())
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		draft   models.PasswordDraft
		matches bool
		want    []string
	}{
		{
			name:    "all good",
			draft:   models.PasswordDraft{CurrentPassword: "parola123", NewPassword: "noua", ConfirmPassword: "noua"},
			matches: true,
			want:    []string{},
		},
		{
			name:    "wrong current fails even when new and confirm agree",
			draft:   models.PasswordDraft{CurrentPassword: "gresit", NewPassword: "noua", ConfirmPassword: "noua"},
			matches: false,
			want:    []string{"currentPasswordIncorrect"},
		},
		{
			name:    "mismatch",
			draft:   models.PasswordDraft{CurrentPassword: "parola123", NewPassword: "noua", ConfirmPassword: "alta"},
			matches: true,
			want:    []string{"passwordMatch"},
		},
		{
			name:    "every rule evaluated together",
			draft:   models.PasswordDraft{CurrentPassword: "  ", NewPassword: "x", ConfirmPassword: ""},
			matches: false,
			want:    []string{"confirmPassword", "currentPassword", "currentPasswordIncorrect", "passwordMatch"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePassword(tt.draft, tt.matches)
			assert.Equal(t, len(tt.want) == 0, res.OK())
			assert.Equal(t, tt.want, res.Fields().Sorted())
		})
	}
}

func TestValidateCard(t *testing.T) {
	opts := NewExpiryOptions(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	valid := models.CardDraft{
		CardName:    "Ion Popescu",
		CardNumber:  "4111111111111111",
		ExpiryMonth: "08",
		ExpiryYear:  "2028",
		CVV:         "123",
	}

	assert.True(t, ValidateCard(valid, opts).OK())

	spaced := valid
	spaced.CardNumber = "4111 1111 1111 1111"
	assert.True(t, ValidateCard(spaced, opts).OK())

	short := valid
	short.CardNumber = "41111111"
	res := ValidateCard(short, opts)
	assert.False(t, res.OK())
	assert.True(t, res.Fields().Has(FieldCardNumber))
	assert.Len(t, res.Fields().Sorted(), 1)

	badCVV := valid
	badCVV.CVV = "12a"
	res = ValidateCard(badCVV, opts)
	assert.False(t, res.OK())
	assert.True(t, res.Fields().Has(FieldCVV))

	empty := ValidateCard(models.CardDraft{}, opts)
	assert.Equal(t, []string{"cardName", "cardNumber", "cvv", "expiryMonth", "expiryYear"}, empty.Fields().Sorted())

	stale := valid
	stale.ExpiryYear = "2019"
	assert.True(t, ValidateCard(stale, opts).Fields().Has(FieldExpiryYear))
}

func TestNewExpiryOptions(t *testing.T) {
	opts := NewExpiryOptions(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Len(t, opts.Months, 12)
	assert.Equal(t, "01", opts.Months[0])
	assert.Equal(t, "12", opts.Months[11])
	assert.Equal(t, "2026", opts.Years[0])
	assert.Equal(t, "2036", opts.Years[len(opts.Years)-1])
}
