package validation

import (
	"strings"
	"unicode/utf8"
)

// ValidateName validates a profile display name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return Errorf("name is required")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return Errorf("name is too long (max 100 characters)")
	}

	return nil
}
