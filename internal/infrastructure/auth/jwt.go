// Package auth issues and validates the bearer tokens that authenticate
// API requests.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingRole  = errors.New("missing role in claims")
)

// Claims carries the authenticated identity inside a signed token. EntityID
// points at the business record behind the account; admins have none.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string           `json:"user_id"`
	Email    string           `json:"email"`
	Role     shared.ActorKind `json:"role"`
	EntityID string           `json:"entity_id,omitempty"`
}

// Actor converts the claims into the domain actor they authenticate as.
// Role-scoped records use the entity id; admins fall back to the account id.
func (c *Claims) Actor() (shared.Actor, error) {
	raw := c.EntityID
	if raw == "" {
		raw = c.UserID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return shared.Actor{}, ErrInvalidToken
	}
	if !shared.ValidActorKind(c.Role) {
		return shared.Actor{}, ErrMissingRole
	}
	return shared.Actor{Kind: c.Role, ID: id}, nil
}

// JWTService signs and validates access tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// TokenInput contains the identity to encode into a token
type TokenInput struct {
	UserID   uuid.UUID
	Email    string
	Role     shared.ActorKind
	EntityID *uuid.UUID
}

// Generate signs an access token and returns it with its expiry
func (s *JWTService) Generate(input TokenInput) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: input.UserID.String(),
		Email:  input.Email,
		Role:   input.Role,
	}
	if input.EntityID != nil {
		claims.EntityID = input.EntityID.String()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate parses and verifies a token, returning its claims
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !shared.ValidActorKind(claims.Role) {
		return nil, ErrMissingRole
	}
	return claims, nil
}
