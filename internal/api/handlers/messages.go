package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/go-smscms/internal/api/dto"
	"github.com/hugh/go-smscms/internal/api/middleware"
	"github.com/hugh/go-smscms/internal/api/validation"
	"github.com/hugh/go-smscms/internal/database/models"
	"github.com/hugh/go-smscms/internal/messages"
)

type MessageHandler struct {
	service *messages.Service
	logger  *slog.Logger
}

func NewMessageHandler(service *messages.Service, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{service: service, logger: logger}
}

// Create handles POST /messages
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	message, err := h.service.Create(
		r.Context(),
		validation.SanitizeString(req.Content),
		req.ContactID,
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		if errors.Is(err, messages.ErrContactNotFound) {
			writeError(w, http.StatusBadRequest, messages.ErrContactNotFound.Error())
			return
		}
		h.logger.Error("creating message failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create message")
		return
	}

	writeJSON(w, http.StatusCreated, messageToDTO(message))
}

// List handles GET /messages, returning only the caller's messages.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.logger.Error("listing messages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}

	resp := make([]dto.MessageDTO, 0, len(list))
	for i := range list {
		resp = append(resp, messageToDTO(&list[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PUT /messages/{id}/status
func (h *MessageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateMessageStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	message, err := h.service.UpdateStatus(
		r.Context(),
		id,
		middleware.GetUserID(r.Context()),
		models.MessageStatus(req.Status),
	)
	if err != nil {
		switch {
		case errors.Is(err, messages.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "Message not found")
		case errors.Is(err, messages.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("updating message status failed", "message_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update message")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageToDTO(message))
}
