package database

import (
	"context"

	"github.com/hugh/go-smscms/internal/contacts"
	"github.com/hugh/go-smscms/internal/database/models"
	"github.com/hugh/go-smscms/internal/messages"
	"gorm.io/gorm"
)

type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Save(ctx context.Context, contact *models.Contact) error {
	return translate(s.db.WithContext(ctx).Create(contact).Error)
}

func (s *ContactStore) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

func (s *ContactStore) ListAll(ctx context.Context) ([]models.Contact, error) {
	list := []models.Contact{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

var (
	_ contacts.Store         = (*ContactStore)(nil)
	_ messages.ContactLookup = (*ContactStore)(nil)
)
