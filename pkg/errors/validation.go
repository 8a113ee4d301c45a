package errors

import (
	"strings"
	"unicode"
)

// ValidateColumnName validates a column name for safety and correctness.
// Column names come from user data files and API payloads, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "column name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateInstanceID validates an opaque chart instance identifier.
// Instance IDs address live chart instances across the update boundary and
// are used in registry keys, so path separators and whitespace are rejected.
func ValidateInstanceID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "instance id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "instance id too long (max 128 characters)")
	}

	if strings.ContainsAny(id, "/\\ \t\n") {
		return New(ErrCodeInvalidInput, "instance id contains invalid characters: %q", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "instance id contains invalid control characters")
		}
	}

	return nil
}
