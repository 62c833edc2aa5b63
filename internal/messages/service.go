package messages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hugh/go-smscms/internal/database/models"
)

var (
	ErrContactNotFound = errors.New("contact does not exist")
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidStatus   = errors.New("invalid message status")
)

type Service struct {
	messages   Store
	contacts   ContactLookup
	dispatcher Dispatcher
	logger     *slog.Logger
}

type Option func(*Service)

// WithDispatcher makes Create hand every new message to d.
func WithDispatcher(d Dispatcher) Option {
	return func(s *Service) {
		s.dispatcher = d
	}
}

func NewService(messages Store, contacts ContactLookup, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{messages: messages, contacts: contacts, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a pending message from userID to an existing contact.
func (s *Service) Create(ctx context.Context, content, contactID, userID string) (*models.Message, error) {
	if _, err := s.contacts.GetByID(ctx, contactID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("looking up contact: %w", err)
	}

	message := models.NewMessage(content, contactID, userID)
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	s.logger.Info("message created", "message_id", message.ID, "user_id", userID, "contact_id", contactID)

	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, message.ID); err != nil {
			s.logger.Warn("message dispatch not scheduled", "message_id", message.ID, "error", err)
		}
	}

	return message, nil
}

// ListForUser returns the messages owned by userID in creation order.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Message, error) {
	return s.messages.GetByUser(ctx, userID)
}

// UpdateStatus moves a message owned by userID to sent or failed. Messages
// owned by other users are reported as not found.
func (s *Service) UpdateStatus(ctx context.Context, messageID, userID string, status models.MessageStatus) (*models.Message, error) {
	message, err := s.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.UserID != userID {
		return nil, ErrMessageNotFound
	}

	return s.applyStatus(ctx, message, status)
}

// SetStatus is UpdateStatus without the ownership check, for trusted
// internal callers such as the dispatch worker.
func (s *Service) SetStatus(ctx context.Context, messageID string, status models.MessageStatus) (*models.Message, error) {
	message, err := s.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	return s.applyStatus(ctx, message, status)
}

// ContactExists reports whether the message's contact is still stored.
func (s *Service) ContactExists(ctx context.Context, message *models.Message) (bool, error) {
	_, err := s.contacts.GetByID(ctx, message.ContactID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, models.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// GetMessage returns a message regardless of owner.
func (s *Service) GetMessage(ctx context.Context, messageID string) (*models.Message, error) {
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("looking up message: %w", err)
	}
	return message, nil
}

func (s *Service) applyStatus(ctx context.Context, message *models.Message, status models.MessageStatus) (*models.Message, error) {
	switch status {
	case models.MessageStatusSent:
		message.MarkSent()
	case models.MessageStatusFailed:
		message.MarkFailed()
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.messages.UpdateStatus(ctx, message.ID, message.Status); err != nil {
		return nil, fmt.Errorf("updating message status: %w", err)
	}

	s.logger.Info("message status updated", "message_id", message.ID, "status", message.Status)
	return message, nil
}
