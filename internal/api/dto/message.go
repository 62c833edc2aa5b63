package dto

import (
	"strings"

	"github.com/hugh/go-smscms/internal/api/validation"
)

type CreateMessageRequest struct {
	Content   string `json:"content"`
	ContactID string `json:"contact_id"`
}

func (r CreateMessageRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Content) == "" {
		errors["content"] = "Content is required"
	}
	if strings.TrimSpace(r.ContactID) == "" {
		errors["contact_id"] = "Contact ID is required"
	}

	return errors
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateMessageStatusRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Status == "" {
		errors["status"] = "Status is required"
	} else if !validation.IsValidStatusUpdate(r.Status) {
		errors["status"] = "Status must be one of: sent, failed"
	}

	return errors
}

type MessageDTO struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	ContactID string `json:"contact_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
