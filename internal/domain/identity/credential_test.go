package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

func TestCredentialToken_VerifyRoundTrip(t *testing.T) {
	tok, err := NewCredentialToken(time.Hour)
	require.NoError(t, err)

	assert.Len(t, tok.Raw, 64)
	assert.NotEqual(t, tok.Raw, tok.Hash)
	assert.NoError(t, VerifyCredentialToken(tok.Raw, tok.Hash, tok.ExpiresAt))
}

func TestCredentialToken_RejectsWrongToken(t *testing.T) {
	tok, err := NewCredentialToken(time.Hour)
	require.NoError(t, err)

	err = VerifyCredentialToken("not-the-token", tok.Hash, tok.ExpiresAt)
	assert.Error(t, err)
}

func TestCredentialToken_RejectsExpired(t *testing.T) {
	tok, err := NewCredentialToken(time.Hour)
	require.NoError(t, err)

	err = VerifyCredentialToken(tok.Raw, tok.Hash, time.Now().Add(-time.Minute))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BAD_REQUEST", domainErr.Code)
}

func TestUser_PasswordLifecycle(t *testing.T) {
	u, err := NewUser("Promoter@Example.com", "s3cret-pass", shared.ActorPromoter)
	require.NoError(t, err)

	assert.Equal(t, "promoter@example.com", u.Email)
	assert.True(t, u.CheckPassword("s3cret-pass"))
	assert.False(t, u.CheckPassword("wrong"))

	_, err = NewUser("a@b.c", "short", shared.ActorPromoter)
	assert.Error(t, err)
}

func TestUser_PasswordResetFlow(t *testing.T) {
	u, err := NewUser("client@example.com", "original-pass", shared.ActorClient)
	require.NoError(t, err)

	raw, err := u.BeginPasswordReset()
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	require.NoError(t, u.CompletePasswordReset(raw, "brand-new-pass"))
	assert.True(t, u.CheckPassword("brand-new-pass"))
	assert.Empty(t, u.ResetTokenHash)

	// Token is single use.
	err = u.CompletePasswordReset(raw, "another-pass")
	assert.Error(t, err)
}

func TestUser_VerificationFlow(t *testing.T) {
	u, err := NewUser("agency@example.com", "agency-pass", shared.ActorAgency)
	require.NoError(t, err)
	assert.False(t, u.IsVerified)

	raw, err := u.BeginVerification()
	require.NoError(t, err)

	assert.Error(t, u.CompleteVerification("bogus"))
	require.NoError(t, u.CompleteVerification(raw))
	assert.True(t, u.IsVerified)
}
