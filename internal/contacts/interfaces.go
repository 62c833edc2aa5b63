package contacts

import (
	"context"

	"github.com/hugh/go-smscms/internal/database/models"
)

// Store persists contacts. GetByID returns models.ErrNotFound when the
// contact does not exist.
type Store interface {
	Save(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	ListAll(ctx context.Context) ([]models.Contact, error)
}
