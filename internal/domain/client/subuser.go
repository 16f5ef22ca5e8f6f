package client

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Subuser is an account acting on behalf of a main user, most commonly a
// client. The main user is a tagged actor reference so agency-owned subusers
// resolve through the same dispatcher.
type Subuser struct {
	shared.BaseEntity
	shared.SoftDeletable
	ClientID uuid.UUID    `gorm:"type:uuid;not null;index" json:"clientId"`
	MainUser shared.Actor `gorm:"embedded;embeddedPrefix:main_user_" json:"mainUser"`
	Name     string       `gorm:"type:varchar(200);not null" json:"name"`
	Email    string       `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	Role     string       `gorm:"type:varchar(50);not null;default:'viewer'" json:"role"`
}

// TableName returns the table name for GORM
func (Subuser) TableName() string {
	return "subusers"
}

// NewSubuser creates a subuser under a client
func NewSubuser(clientID uuid.UUID, mainUser shared.Actor, name, email string) (*Subuser, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Subuser name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Subuser email is required")
	}
	if !shared.ValidActorKind(mainUser.Kind) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown main user kind")
	}

	return &Subuser{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		MainUser:   mainUser,
		Name:       name,
		Email:      email,
	}, nil
}

// SetRole updates the subuser role within the client account
func (s *Subuser) SetRole(role string) {
	s.Role = role
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
