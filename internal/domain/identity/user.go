package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// User is a login account. EntityKind/EntityID point at the business record
// (client, agency, employee, subuser) the account belongs to; admins have no
// linked record. SocketID tracks the user's current realtime connection and
// is empty while offline.
type User struct {
	shared.BaseEntity
	Email        string           `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	PasswordHash string           `gorm:"type:varchar(200);not null" json:"-"`
	Role         shared.ActorKind `gorm:"type:varchar(20);not null;index" json:"role"`
	EntityID     *uuid.UUID       `gorm:"type:uuid;index" json:"entityId,omitempty"`
	SocketID     string           `gorm:"type:varchar(100)" json:"-"`
	IsVerified   bool             `gorm:"not null;default:false" json:"isVerified"`

	VerificationTokenHash string     `gorm:"type:varchar(100)" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	ResetTokenHash        string     `gorm:"type:varchar(100)" json:"-"`
	ResetExpiresAt        *time.Time `json:"-"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an account with a hashed password
func NewUser(email, password string, role shared.ActorKind) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email is required")
	}
	if !shared.ValidActorKind(role) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role")
	}

	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		Role:       role,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// CheckPassword verifies a candidate password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// BeginVerification issues an email-verification token and returns the raw
// token to send; only its hash is stored.
func (u *User) BeginVerification() (string, error) {
	tok, err := NewCredentialToken(VerificationTokenTTL)
	if err != nil {
		return "", err
	}
	u.VerificationTokenHash = tok.Hash
	u.VerificationExpiresAt = &tok.ExpiresAt
	return tok.Raw, nil
}

// CompleteVerification consumes a verification token
func (u *User) CompleteVerification(rawToken string) error {
	if u.VerificationTokenHash == "" || u.VerificationExpiresAt == nil {
		return shared.NewDomainError("BAD_REQUEST", "No verification pending")
	}
	if err := VerifyCredentialToken(rawToken, u.VerificationTokenHash, *u.VerificationExpiresAt); err != nil {
		return err
	}
	u.IsVerified = true
	u.VerificationTokenHash = ""
	u.VerificationExpiresAt = nil
	u.UpdatedAt = time.Now()
	return nil
}

// BeginPasswordReset issues a reset token and returns the raw token to send
func (u *User) BeginPasswordReset() (string, error) {
	tok, err := NewCredentialToken(ResetTokenTTL)
	if err != nil {
		return "", err
	}
	u.ResetTokenHash = tok.Hash
	u.ResetExpiresAt = &tok.ExpiresAt
	return tok.Raw, nil
}

// CompletePasswordReset consumes a reset token and sets the new password
func (u *User) CompletePasswordReset(rawToken, newPassword string) error {
	if u.ResetTokenHash == "" || u.ResetExpiresAt == nil {
		return shared.NewDomainError("BAD_REQUEST", "No password reset pending")
	}
	if err := VerifyCredentialToken(rawToken, u.ResetTokenHash, *u.ResetExpiresAt); err != nil {
		return err
	}
	if err := u.SetPassword(newPassword); err != nil {
		return err
	}
	u.ResetTokenHash = ""
	u.ResetExpiresAt = nil
	return nil
}

// SetSocket records the user's live connection id; empty clears it
func (u *User) SetSocket(socketID string) {
	u.SocketID = socketID
	u.UpdatedAt = time.Now()
}
