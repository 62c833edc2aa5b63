package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"valid_simple", "user@example.com", true},
		{"valid_subdomain", "user@mail.example.com", true},
		{"valid_plus", "user+tag@example.com", true},
		{"valid_uppercase", "User@Example.COM", true},
		{"valid_surrounding_space", "  user@example.com ", true},
		{"invalid_no_at", "userexample.com", false},
		{"invalid_no_domain", "user@", false},
		{"invalid_no_user", "@example.com", false},
		{"invalid_double_at", "user@@example.com", false},
		{"invalid_spaces", "user @example.com", false},
		{"invalid_no_tld", "user@example", false},
		{"too_long", strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidEmail(tt.email)
			assert.Equal(t, tt.valid, result, "Email: %s", tt.email)
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
		errMsg   string
	}{
		{"minimum", "12345678", true, ""},
		{"maximum", strings.Repeat("a", 72), true, ""},
		{"too_short", "Pass1!", false, "at least 8 characters"},
		{"too_long", strings.Repeat("a", 73), false, "at most 72 bytes"},
		{"multibyte_over_limit", strings.Repeat("ñ", 37), false, "at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := IsValidPassword(tt.password)
			assert.Equal(t, tt.valid, valid)
			if !valid {
				assert.Contains(t, msg, tt.errMsg)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"seven_digits", "5551234", true},
		{"padded", " 5551234 ", true},
		{"six_digits", "555123", false},
		{"plus_prefix", "+15551234", false},
		{"dashes", "555-1234", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := IsValidPhone(tt.phone)
			assert.Equal(t, tt.valid, valid)
			if !valid {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestIsValidStatusUpdate(t *testing.T) {
	assert.True(t, IsValidStatusUpdate("sent"))
	assert.True(t, IsValidStatusUpdate("failed"))
	assert.False(t, IsValidStatusUpdate("pending"))
	assert.False(t, IsValidStatusUpdate("SENT"))
	assert.False(t, IsValidStatusUpdate(""))
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean_text", "Hello World", "Hello World"},
		{"null_bytes", "Hello\x00World", "HelloWorld"},
		{"control_chars", "Hello\x01\x02World", "HelloWorld"},
		{"keep_newlines", "Hello\nWorld", "Hello\nWorld"},
		{"keep_tabs", "Hello\tWorld", "Hello\tWorld"},
		{"keep_accents", "José Núñez", "José Núñez"},
		{"mixed", "Hello\x00\x01\nWorld\t!", "Hello\nWorld\t!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeString(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
