package services

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authDeps struct {
	users     *mocks.MockUserRepository
	resets    *mocks.MockPasswordResetRepository
	publisher *mocks.MockPublisher
	tokens    *auth.Tokens
}

func newAuthService() (*AuthService, authDeps) {
	d := authDeps{
		users:     new(mocks.MockUserRepository),
		resets:    new(mocks.MockPasswordResetRepository),
		publisher: new(mocks.MockPublisher),
		tokens:    auth.NewTokens("test-secret", time.Hour),
	}
	svc := NewAuthService(d.users, d.resets, d.tokens, d.publisher, time.Hour)
	svc.now = fixedClock
	return svc, d
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user and issues a token", func(t *testing.T) {
		svc, d := newAuthService()
		d.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, domain.ErrNotFound)
		d.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		u, token, err := svc.SignUp(ctx, SignUpInput{Name: " Ada ", Email: " Ada@Example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, "Ada", u.Name)
		assert.Equal(t, domain.RoleUser, u.Role)
		assert.NotEqual(t, "correct horse", u.Password)
		assert.True(t, auth.CheckPassword(u.Password, "correct horse"))

		claims, err := d.tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, d := newAuthService()
		d.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&domain.User{ID: "u1"}, nil)

		_, _, err := svc.SignUp(ctx, SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc, d := newAuthService()
		_, _, err := svc.SignUp(ctx, SignUpInput{Name: "Ada", Email: "not-an-email", Password: "correct horse"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		d.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, domain.ErrNotFound)
		_, _, err = svc.SignUp(ctx, SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "short"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		d.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	svc, d := newAuthService()
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	d.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&domain.User{ID: "u1", Email: "ada@example.com", Password: hash, Role: domain.RoleAdmin}, nil)
	d.users.On("FindByEmail", mock.Anything, "who@example.com").Return(nil, domain.ErrNotFound)

	u, token, err := svc.SignIn(context.Background(), "ADA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	claims, err := d.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	_, _, err = svc.SignIn(context.Background(), "ada@example.com", "wrong horse")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = svc.SignIn(context.Background(), "who@example.com", "correct horse")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService()
	user := &domain.User{ID: "u1", Email: "ada@example.com"}
	d.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	d.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	var stored *domain.PasswordReset
	d.resets.On("Create", mock.Anything, mock.AnythingOfType("*domain.PasswordReset")).Return(nil).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.PasswordReset)
	})
	var mailed domain.PasswordResetRequestedEvent
	d.publisher.On("Publish", mock.Anything, domain.EventPasswordReset, mock.AnythingOfType("domain.PasswordResetRequestedEvent")).Return(nil).Run(func(args mock.Arguments) {
		mailed = args.Get(2).(domain.PasswordResetRequestedEvent)
	})

	require.NoError(t, svc.RequestPasswordReset(ctx, "ada@example.com"))
	require.NotNil(t, stored)
	assert.Equal(t, auth.HashResetToken(mailed.Token), stored.TokenHash)
	assert.NotEqual(t, mailed.Token, stored.TokenHash)
	assert.Equal(t, testNow.Add(time.Hour), stored.ExpiresAt)

	require.NoError(t, svc.RequestPasswordReset(ctx, "ghost@example.com"))
	for _, bad := range []string{"nope", "", "Ada <ada@example.com>"} {
		assert.ErrorIs(t, svc.RequestPasswordReset(ctx, bad), domain.ErrValidation, bad)
	}

	d.resets.On("FindByTokenHash", mock.Anything, stored.TokenHash).Return(stored, nil)
	d.resets.On("FindByTokenHash", mock.Anything, auth.HashResetToken("forged")).Return(nil, domain.ErrNotFound)
	d.users.On("UpdatePassword", mock.Anything, "u1", mock.AnythingOfType("string")).Return(nil)
	d.resets.On("MarkUsed", mock.Anything, stored.ID).Return(nil)

	_, err := svc.ValidateResetToken(ctx, "forged")
	assert.ErrorIs(t, err, domain.ErrValidation)

	r, err := svc.ValidateResetToken(ctx, mailed.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", r.UserID)

	assert.ErrorIs(t, svc.ResetPassword(ctx, mailed.Token, "short"), domain.ErrValidation)
	require.NoError(t, svc.ResetPassword(ctx, mailed.Token, "a much better one"))
	d.resets.AssertCalled(t, "MarkUsed", mock.Anything, stored.ID)

	used := testNow
	stored.UsedAt = &used
	_, err = svc.ValidateResetToken(ctx, mailed.Token)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, d := newAuthService()
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	d.users.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Password: hash}, nil)
	d.users.On("UpdatePassword", mock.Anything, "u1", mock.AnythingOfType("string")).Return(nil)

	ctx := context.Background()
	assert.ErrorIs(t, svc.ChangePassword(ctx, "u1", "wrong", "battery staple"), domain.ErrUnauthorized)
	assert.ErrorIs(t, svc.ChangePassword(ctx, "u1", "correct horse", "correct horse"), domain.ErrValidation)
	require.NoError(t, svc.ChangePassword(ctx, "u1", "correct horse", "battery staple"))
	d.users.AssertNumberOfCalls(t, "UpdatePassword", 1)
}
