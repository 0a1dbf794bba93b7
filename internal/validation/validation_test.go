package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/templui/studytrail/internal/apperr"
)

func TestErrorsMatchValidationKind(t *testing.T) {
	err := ValidateGoalTitle("   ")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("ValidateGoalTitle blank: want ErrValidation, got %v", err)
	}
	if err.Error() != "title is required" {
		t.Fatalf("message: want=%q got=%q", "title is required", err.Error())
	}
}

func TestValidateGoalTitle(t *testing.T) {
	tests := []struct {
		title string
		ok    bool
	}{
		{"Learn Rust", true},
		{"", false},
		{"\t\n", false},
		{strings.Repeat("a", MaxTitleLength), true},
		{strings.Repeat("a", MaxTitleLength+1), false},
	}
	for _, tt := range tests {
		err := ValidateGoalTitle(tt.title)
		if (err == nil) != tt.ok {
			t.Fatalf("ValidateGoalTitle(len=%d): want ok=%v got %v", len(tt.title), tt.ok, err)
		}
	}
}

func TestParseTargetDate(t *testing.T) {
	d, err := ParseTargetDate("2026-12-01")
	if err != nil || d == nil || d.Day() != 1 || d.Month() != 12 {
		t.Fatalf("ParseTargetDate: got %v, %v", d, err)
	}

	d, err = ParseTargetDate("")
	if err != nil || d != nil {
		t.Fatalf("ParseTargetDate(empty): want nil, nil got %v, %v", d, err)
	}

	if _, err := ParseTargetDate("12/01/2026"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("ParseTargetDate(bad): want ErrValidation, got %v", err)
	}
}

func TestValidateDayNumber(t *testing.T) {
	if err := ValidateDayNumber(0); err == nil {
		t.Fatalf("ValidateDayNumber(0): want error")
	}
	if err := ValidateDayNumber(-2); err == nil {
		t.Fatalf("ValidateDayNumber(-2): want error")
	}
	if err := ValidateDayNumber(1); err != nil {
		t.Fatalf("ValidateDayNumber(1): %v", err)
	}
}

func TestValidatePriority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high"} {
		if err := ValidatePriority(p); err != nil {
			t.Fatalf("ValidatePriority(%q): %v", p, err)
		}
	}
	if err := ValidatePriority("urgent"); err == nil {
		t.Fatalf("ValidatePriority(urgent): want error")
	}
}

func TestValidateContent(t *testing.T) {
	pdf := []byte("%PDF-1.7\n1 0 obj\n")
	text := []byte("# Chapter 1\n\nSome notes about graphs.\n")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		filename string
		size     int64
		head     []byte
		want     string
		ok       bool
	}{
		{"pdf", "notes.PDF", 100, pdf, "application/pdf", true},
		{"markdown", "notes.md", 100, text, "text/markdown", true},
		{"text", "notes.txt", 100, text, "text/plain", true},
		{"renamed image", "notes.pdf", 100, png, "", false},
		{"unknown extension", "notes.exe", 100, pdf, "", false},
		{"too large", "notes.pdf", 21 << 20, pdf, "", false},
		{"empty", "notes.txt", 0, nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateContent(tt.filename, tt.size, tt.head, StudyMaterialConstraints)
			if (err == nil) != tt.ok {
				t.Fatalf("want ok=%v got %v", tt.ok, err)
			}
			if got != tt.want {
				t.Fatalf("content type: want=%q got=%q", tt.want, got)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Fatalf("short password accepted")
	}
	if err := ValidatePassword("mypassword-is-long"); err == nil {
		t.Fatalf("common pattern accepted")
	}
	if err := ValidatePassword("correct horse battery"); err != nil {
		t.Fatalf("ValidatePassword: %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("ada@example.com"); err != nil {
		t.Fatalf("ValidateEmail: %v", err)
	}
	for _, bad := range []string{"", "ada", "Ada <ada@example.com>"} {
		if err := ValidateEmail(bad); err == nil {
			t.Fatalf("ValidateEmail(%q): want error", bad)
		}
	}
}
