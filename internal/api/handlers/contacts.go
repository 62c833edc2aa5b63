package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hugh/go-smscms/internal/api/dto"
	"github.com/hugh/go-smscms/internal/api/validation"
	"github.com/hugh/go-smscms/internal/contacts"
)

// uploadMemory is how much of a multipart upload is buffered in memory
// before spilling to temporary files.
const uploadMemory = 1 << 20

type ContactHandler struct {
	service  *contacts.Service
	maxBytes int64
	logger   *slog.Logger
}

func NewContactHandler(service *contacts.Service, maxBytes int64, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: service, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /contacts/upload with a multipart "file" field
// holding name,phone rows.
func (h *ContactHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Details: map[string]string{"file": "File is required"},
		})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	text, encoding := contacts.Decode(raw)
	result := h.service.Ingest(r.Context(), text)

	h.logger.Info("contacts uploaded",
		"filename", header.Filename,
		"encoding", encoding,
		"created", len(result.Created),
		"skipped", len(result.Skipped),
	)

	resp := dto.UploadResponse{
		Contacts: make([]dto.ContactDTO, 0, len(result.Created)),
		Created:  len(result.Created),
		Skipped:  skippedToDTO(result.Skipped),
		Encoding: encoding,
	}
	for _, contact := range result.Created {
		resp.Contacts = append(resp.Contacts, contactToDTO(contact))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	contact, err := h.service.Create(r.Context(), validation.SanitizeString(req.Name), req.Phone)
	if err != nil {
		if errors.Is(err, contacts.ErrInvalidContact) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("creating contact failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	writeJSON(w, http.StatusCreated, contactToDTO(contact))
}

// List handles GET /contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("listing contacts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list contacts")
		return
	}

	resp := make([]dto.ContactDTO, 0, len(list))
	for i := range list {
		resp = append(resp, contactToDTO(&list[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}
