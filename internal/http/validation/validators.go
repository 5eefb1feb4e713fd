// Package validation checks browser form input before any API call is made.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // validator instances cache struct metadata and are safe for concurrent use
var validate = validator.New()

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required validates that a field is not empty and does not exceed maxLen characters.
// Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " wajib diisi"
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s maksimal %d karakter", fieldName, maxLen)
		}
		return ""
	}
}

// Optional validates that an optional field does not exceed maxLen characters if provided.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > maxLen {
			return fmt.Sprintf("%s maksimal %d karakter", fieldName, maxLen)
		}
		return ""
	}
}

// MinLength validates that a field has at least minLen characters. Surrounding spaces count.
func MinLength(fieldName string, minLen int) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(v) < minLen {
			return fmt.Sprintf("%s minimal %d karakter!", fieldName, minLen)
		}
		return ""
	}
}

// Email validates address syntax when a value is present.
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if err := validate.Var(v, "email"); err != nil {
			return fieldName + " tidak valid"
		}
		return ""
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
	order  []string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			if _, seen := fv.errors[field]; !seen {
				fv.order = append(fv.order, field)
			}
			fv.errors[field] = msg
			break
		}
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// First returns the message of the first field that failed, or "".
func (fv *FieldValidator) First() string {
	if len(fv.order) == 0 {
		return ""
	}
	return fv.errors[fv.order[0]]
}
