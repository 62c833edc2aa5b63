package dto

import (
	"strings"

	"github.com/hugh/go-smscms/internal/api/validation"
)

type CreateContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (r CreateContactRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errors["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Phone) == "" {
		errors["phone"] = "Phone is required"
	} else if ok, msg := validation.IsValidPhone(r.Phone); !ok {
		errors["phone"] = msg
	}

	return errors
}

type ContactDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type SkippedRowDTO struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Raw    string `json:"raw"`
}

// UploadResponse reports the outcome of a CSV upload.
type UploadResponse struct {
	Contacts []ContactDTO    `json:"contacts"`
	Created  int             `json:"created"`
	Skipped  []SkippedRowDTO `json:"skipped"`
	Encoding string          `json:"encoding"`
}
