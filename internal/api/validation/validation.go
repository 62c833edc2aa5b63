package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/hugh/go-smscms/internal/auth"
	"github.com/hugh/go-smscms/internal/database/models"
)

var (
	// EmailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// IsValidEmail checks if the string is a valid email format. Surrounding
// whitespace is ignored since emails are normalized before storage.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidPassword checks the password length in bytes, the unit bcrypt
// works in.
func IsValidPassword(password string) (bool, string) {
	if len(password) < auth.MinPasswordBytes {
		return false, fmt.Sprintf("Password must be at least %d characters", auth.MinPasswordBytes)
	}
	if len(password) > auth.MaxPasswordBytes {
		return false, fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes)
	}
	return true, ""
}

// IsValidPhone reports whether phone is accepted for a contact.
func IsValidPhone(phone string) (bool, string) {
	if err := models.ValidatePhone(strings.TrimSpace(phone)); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// IsValidStatusUpdate reports whether status is a target a client may set.
// Messages start pending and can only move to sent or failed.
func IsValidStatusUpdate(status string) bool {
	switch models.MessageStatus(status) {
	case models.MessageStatusSent, models.MessageStatusFailed:
		return true
	}
	return false
}

// SanitizeString removes potentially dangerous characters for display
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")

	// Remove control characters except newlines and tabs
	var result strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
