package auth

import (
	"context"

	"github.com/hugh/go-smscms/internal/database/models"
)

// Authenticator defines the account operations exposed to the HTTP layer.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	Deactivate(ctx context.Context, id string) error
}

// UserStore is the persistence the auth service needs. Implementations
// return models.ErrNotFound for missing users and models.ErrConflict when
// the email is already taken.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	Issue(subject string) (string, error)
	Verify(tokenString string) (string, bool)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ Hasher        = (*BcryptHasher)(nil)
	_ TokenService  = (*JWTService)(nil)
)
