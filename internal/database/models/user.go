package models

import "strings"

type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"not null" json:"is_active"`
}

func (User) TableName() string {
	return "users"
}

// NewUser builds an active user with a generated id and creation time.
// The email is normalized to lowercase.
func NewUser(email, passwordHash string) *User {
	return &User{
		Base:         newBase(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		IsActive:     true,
	}
}

// Deactivate marks the account as inactive. Inactive users cannot log in.
func (u *User) Deactivate() {
	u.IsActive = false
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
