package contacts

import (
	"strings"

	"github.com/hugh/go-smscms/internal/database/models"
)

// SkipReason explains why a CSV line did not produce a contact.
type SkipReason string

const (
	SkipBlank         SkipReason = "blank"
	SkipHeader        SkipReason = "header"
	SkipColumnCount   SkipReason = "column_count"
	SkipEmptyField    SkipReason = "empty_field"
	SkipInvalidPhone  SkipReason = "invalid_phone"
	SkipPersistFailed SkipReason = "persist_failed"
)

// SkippedRow records a data line that was dropped. Line is 1-indexed.
type SkippedRow struct {
	Line   int        `json:"line"`
	Reason SkipReason `json:"reason"`
	Raw    string     `json:"raw"`
}

var headerTokens = []string{"nombre", "name"}

// detectDelimiter picks the separator for the whole file from its first line.
func detectDelimiter(lines []string) string {
	if len(lines) > 0 && strings.Contains(lines[0], ";") {
		return ";"
	}
	return ","
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, token := range headerTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// parseRow turns one line into a candidate contact. index is 0-based.
// A non-empty reason means the line must be skipped and the contact is nil.
func parseRow(index int, line, delimiter string) (*models.Contact, SkipReason) {
	if strings.TrimSpace(line) == "" {
		return nil, SkipBlank
	}

	if index == 0 && isHeader(line) {
		return nil, SkipHeader
	}

	fields := strings.Split(line, delimiter)
	if len(fields) != 2 {
		return nil, SkipColumnCount
	}

	name := strings.TrimSpace(fields[0])
	phone := strings.TrimSpace(fields[1])
	if name == "" || phone == "" {
		return nil, SkipEmptyField
	}

	contact := models.NewContact(name, phone)
	if err := contact.Validate(); err != nil {
		return nil, SkipInvalidPhone
	}

	return contact, ""
}

// silent reports whether a reason is routine and not worth a diagnostic.
func (r SkipReason) silent() bool {
	return r == SkipBlank || r == SkipHeader
}
