package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/hugh/go-smscms/internal/auth"
	"github.com/hugh/go-smscms/internal/database"
	"github.com/hugh/go-smscms/internal/testutil"
	"github.com/hugh/go-smscms/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) (*auth.Service, *testutil.TestSetup) {
	t.Helper()
	tc := testutil.NewTestContext(t)
	t.Cleanup(tc.Cleanup)
	return tc.AuthService(), tc
}

func TestService_Register(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := testutil.TestContext(t)

	t.Run("creates active user with normalized email", func(t *testing.T) {
		user, err := svc.Register(ctx, "New.User@Example.com", "digest")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "new.user@example.com", user.Email)
		assert.Equal(t, "digest", user.PasswordHash)
		assert.True(t, user.IsActive)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "dup@example.com", "digest")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "dup@example.com", "digest")
		assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
	})

	t.Run("duplicate after normalization", func(t *testing.T) {
		_, err := svc.Register(ctx, "case@example.com", "digest")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "  CASE@Example.COM ", "digest")
		assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
	})
}

func TestService_SignUp(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := testutil.TestContext(t)

	t.Run("hashes the password", func(t *testing.T) {
		user, err := svc.SignUp(ctx, "signup@example.com", "securepassword123")
		require.NoError(t, err)
		assert.NotEqual(t, "securepassword123", user.PasswordHash)
		assert.True(t, testutil.TestHasher().Verify("securepassword123", user.PasswordHash))
	})

	t.Run("password too short", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "short@example.com", "short")
		assert.ErrorIs(t, err, auth.ErrPasswordPolicy)
	})

	t.Run("password too long", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "long@example.com", strings.Repeat("a", 73))
		assert.ErrorIs(t, err, auth.ErrPasswordPolicy)
	})
}

func TestService_Authenticate(t *testing.T) {
	svc, tc := setupAuthService(t)
	ctx := testutil.TestContext(t)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, tc.User.Email, testutil.TestPassword)
		require.NoError(t, err)
		assert.Equal(t, tc.User.ID, user.ID)
	})

	t.Run("email is case insensitive", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, strings.ToUpper(tc.User.Email), testutil.TestPassword)
		require.NoError(t, err)
		assert.Equal(t, tc.User.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, tc.User.Email, "wrongpassword")
		assert.Equal(t, auth.ErrInvalidCredentials, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", testutil.TestPassword)
		assert.Equal(t, auth.ErrInvalidCredentials, err)
	})

	t.Run("inactive account with correct password", func(t *testing.T) {
		inactive := testutil.CreateTestUser(t, tc.DB, "inactive@example.com")
		require.NoError(t, svc.Deactivate(ctx, inactive.ID))

		_, err := svc.Authenticate(ctx, inactive.Email, testutil.TestPassword)
		assert.Equal(t, auth.ErrInactiveAccount, err)
	})

	t.Run("inactive account with wrong password", func(t *testing.T) {
		inactive := testutil.CreateTestUser(t, tc.DB, "inactive2@example.com")
		require.NoError(t, svc.Deactivate(ctx, inactive.ID))

		_, err := svc.Authenticate(ctx, inactive.Email, "wrongpassword")
		assert.Equal(t, auth.ErrInvalidCredentials, err)
	})
}

func TestService_GetUserByID(t *testing.T) {
	svc, tc := setupAuthService(t)
	ctx := testutil.TestContext(t)

	user, err := svc.GetUserByID(ctx, tc.User.ID)
	require.NoError(t, err)
	assert.Equal(t, tc.User.Email, user.Email)

	_, err = svc.GetUserByID(ctx, "missing")
	assert.Equal(t, auth.ErrUserNotFound, err)
}

func TestService_Deactivate(t *testing.T) {
	svc, tc := setupAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Deactivate(ctx, tc.User.ID))

	stored, err := database.NewUserStore(tc.DB).GetByID(ctx, tc.User.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	assert.Equal(t, auth.ErrUserNotFound, svc.Deactivate(ctx, "missing"))
}

func TestService_UsesInjectedHasher(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()

	svc := auth.NewService(database.NewUserStore(tc.DB), rejectAll{}, util.DiscardLogger())

	_, err := svc.Authenticate(context.Background(), tc.User.Email, testutil.TestPassword)
	assert.Equal(t, auth.ErrInvalidCredentials, err)
}

type rejectAll struct{}

func (rejectAll) Hash(password string) (string, error) { return "x", nil }
func (rejectAll) Verify(password, digest string) bool  { return false }
