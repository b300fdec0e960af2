package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Email reports whether the value is a syntactically valid email address
func (v *Validator) Email(email string) bool {
	return v.validate.Var(email, "required,email") == nil
}

// Mobile reports whether the value is a 10-digit mobile number
func (v *Validator) Mobile(mobile string) bool {
	return v.validate.Var(mobile, "required,len=10,numeric") == nil
}

// UUID reports whether the value parses as a UUID
func (v *Validator) UUID(id string) bool {
	return uuid.Validate(id) == nil
}

// SanitizeString removes null bytes and trims surrounding whitespace
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.TrimSpace(s)
	return s
}
