package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "promorama-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	entityID := uuid.New()

	token, expiresAt, err := svc.Generate(TokenInput{
		UserID:   userID,
		Email:    "promoter@acme.test",
		Role:     shared.ActorPromoter,
		EntityID: &entityID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, shared.ActorPromoter, claims.Role)
	assert.Equal(t, entityID.String(), claims.EntityID)

	actor, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, shared.ActorPromoter, actor.Kind)
	assert.Equal(t, entityID, actor.ID)
}

func TestJWTService_AdminActorFallsBackToUserID(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, _, err := svc.Generate(TokenInput{
		UserID: userID,
		Email:  "admin@promorama.test",
		Role:   shared.ActorAdmin,
	})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	actor, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, userID, actor.ID)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "promorama-test",
	})

	token, _, err := svc.Generate(TokenInput{UserID: uuid.New(), Role: shared.ActorClient})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-also-32-chars!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "promorama-test",
	})

	token, _, err := other.Generate(TokenInput{UserID: uuid.New(), Role: shared.ActorClient})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService()
	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
