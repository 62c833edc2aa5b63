package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hugh/go-smscms/internal/api/dto"
	"github.com/hugh/go-smscms/internal/contacts"
	"github.com/hugh/go-smscms/internal/database/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

// decodeJSON reads the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func userToDTO(user *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func contactToDTO(contact *models.Contact) dto.ContactDTO {
	return dto.ContactDTO{
		ID:    contact.ID,
		Name:  contact.Name,
		Phone: contact.Phone,
	}
}

func messageToDTO(message *models.Message) dto.MessageDTO {
	return dto.MessageDTO{
		ID:        message.ID,
		Content:   message.Content,
		ContactID: message.ContactID,
		UserID:    message.UserID,
		Status:    string(message.Status),
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	}
}

func skippedToDTO(rows []contacts.SkippedRow) []dto.SkippedRowDTO {
	out := make([]dto.SkippedRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.SkippedRowDTO{
			Line:   row.Line,
			Reason: string(row.Reason),
			Raw:    row.Raw,
		})
	}
	return out
}
