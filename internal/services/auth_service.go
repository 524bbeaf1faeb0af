package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
)

var errBadCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)

type SignUpInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	users     repository.UserRepository
	resets    repository.PasswordResetRepository
	tokens    *auth.Tokens
	publisher rabbit.PublisherInterface
	resetTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, resets repository.PasswordResetRepository, tokens *auth.Tokens, pub rabbit.PublisherInterface, resetTTL time.Duration) *AuthService {
	if pub == nil {
		pub = rabbit.Nop{}
	}
	return &AuthService{users: users, resets: resets, tokens: tokens, publisher: pub, resetTTL: resetTTL, now: time.Now}
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*domain.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, "", fmt.Errorf("%w: email already registered", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	now := s.now()
	u := &domain.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		Role:      domain.RoleUser,
		Wishlist:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", errBadCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, "", errBadCredentials
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// RequestPasswordReset issues a reset token for email and hands it to the
// mailer through the event bus. Unknown addresses succeed silently so the
// endpoint does not reveal which emails are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return invalid("email is not valid")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		log.Printf("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	plain, hash := auth.NewResetToken()
	now := s.now()
	r := &domain.PasswordReset{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.resetTTL),
		CreatedAt: now,
	}
	if err := s.resets.Create(ctx, r); err != nil {
		return err
	}

	evt := domain.PasswordResetRequestedEvent{UserID: u.ID, Email: u.Email, Token: plain, ExpiresAt: r.ExpiresAt}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), domain.EventPasswordReset, evt); err != nil {
		log.Printf("failed to publish %s: %v", domain.EventPasswordReset, err)
	}
	return nil
}

func (s *AuthService) ValidateResetToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	if token == "" {
		return nil, invalid("reset token is required")
	}
	r, err := s.resets.FindByTokenHash(ctx, auth.HashResetToken(token))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, invalid("reset token is invalid or expired")
	}
	if err != nil {
		return nil, err
	}
	if !r.Usable(s.now()) {
		return nil, invalid("reset token is invalid or expired")
	}
	return r, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	r, err := s.ValidateResetToken(ctx, token)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, r.UserID, hash); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, r.ID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.Password, current) {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrUnauthorized)
	}
	if current == next {
		return invalid("new password must differ from the current one")
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
