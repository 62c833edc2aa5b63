package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/hugh/go-smscms/internal/database/models"
	"github.com/hugh/go-smscms/internal/messages"
)

// MessageUpdater is what the dispatch worker needs from the message service.
type MessageUpdater interface {
	GetMessage(ctx context.Context, messageID string) (*models.Message, error)
	ContactExists(ctx context.Context, message *models.Message) (bool, error)
	SetStatus(ctx context.Context, messageID string, status models.MessageStatus) (*models.Message, error)
}

type Handler struct {
	messages MessageUpdater
	logger   *slog.Logger
}

func NewHandler(messages MessageUpdater, logger *slog.Logger) *Handler {
	return &Handler{messages: messages, logger: logger}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeMessageDispatch, h.HandleMessageDispatch)
}

// HandleMessageDispatch simulates delivery of a pending message. No SMS is
// sent: a message whose contact still exists is marked sent, otherwise it
// is marked failed.
func (h *Handler) HandleMessageDispatch(ctx context.Context, t *asynq.Task) error {
	var payload MessageDispatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	message, err := h.messages.GetMessage(ctx, payload.MessageID)
	if err != nil {
		if errors.Is(err, messages.ErrMessageNotFound) {
			h.logger.Warn("dispatch skipped: message not found", "message_id", payload.MessageID)
			return nil
		}
		return err
	}

	if message.Status != models.MessageStatusPending {
		h.logger.Info("dispatch skipped: message already settled",
			"message_id", message.ID,
			"status", message.Status,
		)
		return nil
	}

	exists, err := h.messages.ContactExists(ctx, message)
	if err != nil {
		return fmt.Errorf("checking contact: %w", err)
	}

	status := models.MessageStatusSent
	if !exists {
		status = models.MessageStatusFailed
	}

	if _, err := h.messages.SetStatus(ctx, message.ID, status); err != nil {
		return err
	}

	h.logger.Info("message dispatched", "message_id", message.ID, "status", status)
	return nil
}
