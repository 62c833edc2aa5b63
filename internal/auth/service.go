package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hugh/go-smscms/internal/database/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrPasswordPolicy     = errors.New("password policy violation")
)

type Service struct {
	users  UserStore
	hasher Hasher
	logger *slog.Logger
}

func NewService(users UserStore, hasher Hasher, logger *slog.Logger) *Service {
	return &Service{users: users, hasher: hasher, logger: logger}
}

// Register stores a new active user for email with an already computed
// password hash.
func (s *Service) Register(ctx context.Context, email, passwordHash string) (*models.User, error) {
	email = models.NormalizeEmail(email)

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	user := models.NewUser(email, passwordHash)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// SignUp checks the password policy, hashes the password and registers.
func (s *Service) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if err := CheckPasswordPolicy(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return s.Register(ctx, email, hash)
}

// Authenticate returns the user owning email when password matches.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Debug("login rejected: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug("login rejected: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Info("login rejected: inactive account", "user_id", user.ID)
		return nil, ErrInactiveAccount
	}

	return user, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Deactivate disables the account. Tokens already issued stay valid until
// they expire; login is refused from now on.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	user.Deactivate()
	if err := s.users.SetActive(ctx, user.ID, user.IsActive); err != nil {
		return fmt.Errorf("deactivating user: %w", err)
	}

	s.logger.Info("user deactivated", "user_id", user.ID)
	return nil
}
