package validation

import (
	"regexp"
	"sort"
	"strings"
)

// FieldID names a form field (or a cross-field rule) that can fail validation
type FieldID string

const (
	FieldEmail FieldID = "email"
	FieldPhone FieldID = "phone"

	FieldCurrentPassword          FieldID = "currentPassword"
	FieldNewPassword              FieldID = "newPassword"
	FieldConfirmPassword          FieldID = "confirmPassword"
	FieldPasswordMatch            FieldID = "passwordMatch"
	FieldCurrentPasswordIncorrect FieldID = "currentPasswordIncorrect"

	FieldCardName    FieldID = "cardName"
	FieldCardNumber  FieldID = "cardNumber"
	FieldExpiryMonth FieldID = "expiryMonth"
	FieldExpiryYear  FieldID = "expiryYear"
	FieldCVV         FieldID = "cvv"
)

// FieldSet is a set of failed fields. A nil set is empty.
type FieldSet map[FieldID]bool

func (s FieldSet) Has(id FieldID) bool {
	return s[id]
}

// Sorted returns the field ids in a stable order
func (s FieldSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id, failed := range s {
		if failed {
			out = append(out, string(id))
		}
	}
	sort.Strings(out)
	return out
}

// Flags renders the set as the per-field boolean map the views carry
func (s FieldSet) Flags() map[string]bool {
	out := make(map[string]bool, len(s))
	for id, failed := range s {
		if failed {
			out[string(id)] = true
		}
	}
	return out
}

// Result is the outcome of validating one form: either valid or invalid with a set of fields.
type Result struct {
	fields FieldSet
}

// Valid returns the passing result
func Valid() Result {
	return Result{}
}

// Invalid returns a failing result for the given fields
func Invalid(fields ...FieldID) Result {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return Result{fields: set}
}

func (r Result) OK() bool {
	return len(r.fields) == 0
}

// Fields returns a copy of the failed fields
func (r Result) Fields() FieldSet {
	out := make(FieldSet, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^(07\d{8}|\+407\d{8})$`)
	digits16     = regexp.MustCompile(`^\d{16}$`)
	digits3      = regexp.MustCompile(`^\d{3}$`)
)

// IsValidEmail reports whether s is non-empty and shaped like local@domain.tld
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && emailPattern.MatchString(s)
}

// IsValidPhone accepts Romanian mobile numbers, 07XXXXXXXX or +407XXXXXXXX, ignoring whitespace
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(stripSpaces(s))
}

// IsValidCardNumber requires exactly 16 digits once spaces are removed
func IsValidCardNumber(s string) bool {
	return digits16.MatchString(stripSpaces(s))
}

func IsValidCVV(s string) bool {
	return digits3.MatchString(s)
}

// NormalizeCardNumber strips the spaces users type between digit groups
func NormalizeCardNumber(s string) string {
	return stripSpaces(s)
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
