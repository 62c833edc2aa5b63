package messages

import (
	"context"

	"github.com/hugh/go-smscms/internal/database/models"
)

// Store persists messages. GetByID returns models.ErrNotFound when the
// message does not exist.
type Store interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	GetByUser(ctx context.Context, userID string) ([]models.Message, error)
	UpdateStatus(ctx context.Context, id string, status models.MessageStatus) error
}

// ContactLookup resolves the contact a message is addressed to.
type ContactLookup interface {
	GetByID(ctx context.Context, id string) (*models.Contact, error)
}

// Dispatcher hands a stored message to whatever simulates its delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, messageID string) error
}
