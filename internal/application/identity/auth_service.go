// Package identity implements account registration, login, email
// verification, password reset and socket presence.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/identity"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles the account credential lifecycle
type AuthService struct {
	users  identity.UserRepository
	tokens *auth.JWTService
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, tokens *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterInput carries the fields for account creation. EntityID links the
// account to its business record; admins leave it nil.
type RegisterInput struct {
	Email    string
	Password string
	Role     shared.ActorKind
	EntityID *uuid.UUID
}

// RegisterResult is the created account plus the raw verification token to
// send by email. The token is not retrievable again.
type RegisterResult struct {
	User              *identity.User
	VerificationToken string
}

// Register creates an unverified account and starts email verification
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	u, err := identity.NewUser(input.Email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	u.EntityID = input.EntityID

	rawToken, err := u.BeginVerification()
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)),
	)
	return &RegisterResult{User: u, VerificationToken: rawToken}, nil
}

// LoginResult is a signed access token with the account it authenticates
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *identity.User
}

// Login verifies credentials and issues an access token. Wrong email and
// wrong password report the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	token, expiresAt, err := s.tokens.Generate(auth.TokenInput{
		UserID:   u.ID,
		Email:    u.Email,
		Role:     u.Role,
		EntityID: u.EntityID,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// VerifyEmail consumes a verification token and marks the account verified
func (s *AuthService) VerifyEmail(ctx context.Context, rawToken string) (*identity.User, error) {
	u, err := s.users.FindByVerificationTokenHash(ctx, identity.HashCredentialToken(rawToken))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("BAD_REQUEST", "Token is invalid")
		}
		return nil, err
	}
	if err := u.CompleteVerification(rawToken); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// BeginPasswordReset issues a reset token for the account and returns the
// raw token to send by email. An unknown email returns an empty token with
// no error so callers cannot probe for accounts.
func (s *AuthService) BeginPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	rawToken, err := u.BeginPasswordReset()
	if err != nil {
		return "", err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return "", err
	}
	s.logger.Info("password reset started", zap.String("user_id", u.ID.String()))
	return rawToken, nil
}

// CompletePasswordReset consumes a reset token and sets the new password.
// The token is single-use: the stored hash is cleared on success.
func (s *AuthService) CompletePasswordReset(ctx context.Context, rawToken, newPassword string) error {
	u, err := s.users.FindByResetTokenHash(ctx, identity.HashCredentialToken(rawToken))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("BAD_REQUEST", "Token is invalid")
		}
		return err
	}
	if err := u.CompletePasswordReset(rawToken, newPassword); err != nil {
		return err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return err
	}
	s.logger.Info("password reset completed", zap.String("user_id", u.ID.String()))
	return nil
}

// AttachSocket records the account's live realtime connection
func (s *AuthService) AttachSocket(ctx context.Context, userID uuid.UUID, socketID string) error {
	if socketID == "" {
		return shared.NewDomainError("INVALID_INPUT", "Socket id is required")
	}
	return s.users.UpdateSocket(ctx, userID, socketID)
}

// DetachSocket clears the connection when the client disconnects
func (s *AuthService) DetachSocket(ctx context.Context, userID uuid.UUID) error {
	return s.users.UpdateSocket(ctx, userID, "")
}

// GetByID retrieves an account by ID
func (s *AuthService) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.users.FindByID(ctx, id)
}
