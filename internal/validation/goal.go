package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/templui/studytrail/internal/model"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

// ValidateGoalTitle requires a non-blank title of bounded length.
func ValidateGoalTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return Errorf("title is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return Errorf("title is too long (max %d characters)", MaxTitleLength)
	}
	return nil
}

func ValidateGoalDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return Errorf("description is too long (max %d characters)", MaxDescriptionLength)
	}
	return nil
}

// ValidatePriority accepts low, medium and high.
func ValidatePriority(priority string) error {
	if !model.ValidPriority(priority) {
		return Errorf("priority must be one of low, medium, high")
	}
	return nil
}

// ParseTargetDate parses an optional YYYY-MM-DD date. Empty input yields nil.
func ParseTargetDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, Errorf("target date must be formatted as YYYY-MM-DD")
	}
	return &d, nil
}

// ValidateDayNumber requires a 1-based day index.
func ValidateDayNumber(day int) error {
	if day < 1 {
		return Errorf("day number must be 1 or greater")
	}
	return nil
}
