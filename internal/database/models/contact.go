package models

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinPhoneDigits is the shortest phone number accepted for a contact.
const MinPhoneDigits = 7

var (
	ErrEmptyName     = errors.New("name is required")
	ErrPhoneNotDigit = errors.New("phone must contain only digits")
	ErrPhoneTooShort = errors.New("phone is too short")
)

type Contact struct {
	ID    string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Phone string `gorm:"not null" json:"phone"`
}

func (Contact) TableName() string {
	return "contacts"
}

func NewContact(name, phone string) *Contact {
	return &Contact{
		ID:    uuid.NewString(),
		Name:  name,
		Phone: phone,
	}
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Validate reports why the contact cannot be stored, or nil.
func (c *Contact) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return ValidatePhone(c.Phone)
}

// ValidatePhone accepts ASCII digit strings of at least MinPhoneDigits.
func ValidatePhone(phone string) error {
	if phone == "" {
		return ErrPhoneNotDigit
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return ErrPhoneNotDigit
		}
	}
	if len(phone) < MinPhoneDigits {
		return ErrPhoneTooShort
	}
	return nil
}
