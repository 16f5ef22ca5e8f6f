package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Token lifetimes for the two credential flows
const (
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = 10 * time.Minute
)

// CredentialToken is a single-use token pair: the raw value leaves the
// system exactly once (in an email), the hash is what gets stored.
type CredentialToken struct {
	Raw       string
	Hash      string
	ExpiresAt time.Time
}

// NewCredentialToken generates a random token valid for the given duration
func NewCredentialToken(ttl time.Duration) (*CredentialToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	raw := hex.EncodeToString(buf)
	return &CredentialToken{
		Raw:       raw,
		Hash:      HashCredentialToken(raw),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// HashCredentialToken returns the storable hash of a raw token
func HashCredentialToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// VerifyCredentialToken checks a raw token against a stored hash and expiry
func VerifyCredentialToken(raw, storedHash string, expiresAt time.Time) error {
	if time.Now().After(expiresAt) {
		return shared.NewDomainError("BAD_REQUEST", "Token has expired")
	}
	candidate := HashCredentialToken(raw)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) != 1 {
		return shared.NewDomainError("BAD_REQUEST", "Token is invalid")
	}
	return nil
}
