package database

import (
	"context"

	"github.com/hugh/go-smscms/internal/database/models"
	"github.com/hugh/go-smscms/internal/messages"
	"gorm.io/gorm"
)

type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Create(ctx context.Context, message *models.Message) error {
	return translate(s.db.WithContext(ctx).Create(message).Error)
}

func (s *MessageStore) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

// GetByUser returns the user's messages oldest first.
func (s *MessageStore) GetByUser(ctx context.Context, userID string) ([]models.Message, error) {
	list := []models.Message{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *MessageStore) UpdateStatus(ctx context.Context, id string, status models.MessageStatus) error {
	result := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

var _ messages.Store = (*MessageStore)(nil)
