// Package validation checks form values against the per-field rules the
// registration flow enforces at submit time. Rules run per field in config
// order; the orchestrator short-circuits on the first failure.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-regform/pkg/formconfig"
)

var (
	// namePattern accepts Unicode letters, combining marks, and whitespace so
	// names in any script validate.
	namePattern   = regexp.MustCompile(`^[\p{L}\p{M}\s]+$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

const phoneLength = 10

// FieldError reports one failed rule. Message is user-facing text; the
// orchestrator surfaces it as a transient notification.
type FieldError struct {
	FieldID string
	Message string
}

// Error satisfies the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("validation: field %q: %s", e.FieldID, e.Message)
}

// Field validates a single value against its spec. A nil return means the
// value passes. The required check runs first; type- and id-specific rules
// apply only to non-empty values.
func Field(spec formconfig.FieldSpec, value string) *FieldError {
	if spec.Required && value == "" {
		return &FieldError{
			FieldID: spec.ID,
			Message: fmt.Sprintf("%s is required.", spec.ID),
		}
	}
	if value == "" {
		return nil
	}

	switch {
	case isNameField(spec):
		if !namePattern.MatchString(value) {
			return &FieldError{
				FieldID: spec.ID,
				Message: "Name should only contain alphabets.",
			}
		}
	case isAccountField(spec):
		if !digitsPattern.MatchString(value) {
			return &FieldError{
				FieldID: spec.ID,
				Message: "Account number should only contain numbers.",
			}
		}
	case isPhoneField(spec):
		if len(value) != phoneLength || !digitsPattern.MatchString(value) {
			return &FieldError{
				FieldID: spec.ID,
				Message: "Phone number should be a 10 digit number",
			}
		}
	}
	return nil
}

func isNameField(spec formconfig.FieldSpec) bool {
	return spec.ID == "name"
}

func isAccountField(spec formconfig.FieldSpec) bool {
	return strings.Contains(spec.ID, "account")
}

func isPhoneField(spec formconfig.FieldSpec) bool {
	return spec.Type == formconfig.FieldTypeTel || spec.ID == "phone"
}
