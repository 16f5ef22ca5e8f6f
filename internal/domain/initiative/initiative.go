package initiative

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Status represents the lifecycle status of an initiative
type Status string

const (
	StatusPending   Status = "pending"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// Initiative is a field-marketing campaign a client runs, optionally through
// an agency. Deleting an initiative bulk-deletes its initiative-stores;
// deleting its client bulk-deletes the initiative itself.
type Initiative struct {
	shared.BaseEntity
	shared.SoftDeletable
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"clientId"`
	AgencyID    *uuid.UUID `gorm:"type:uuid;index" json:"agencyId,omitempty"`
	Name        string     `gorm:"type:varchar(200);not null;index" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

// TableName returns the table name for GORM
func (Initiative) TableName() string {
	return "initiatives"
}

// NewInitiative creates a pending initiative for a client
func NewInitiative(clientID uuid.UUID, name, description string) (*Initiative, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Initiative name is required")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client is required")
	}

	return &Initiative{
		BaseEntity:  shared.NewBaseEntity(),
		ClientID:    clientID,
		Name:        name,
		Description: description,
		Status:      StatusPending,
	}, nil
}

// Start moves a pending initiative to ongoing
func (i *Initiative) Start() error {
	if i.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending initiative can be started")
	}
	i.Status = StatusOngoing
	now := time.Now()
	i.StartDate = &now
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}

// Complete closes an ongoing initiative
func (i *Initiative) Complete() error {
	if i.Status != StatusOngoing {
		return shared.NewDomainError("INVALID_STATE", "Only an ongoing initiative can be completed")
	}
	i.Status = StatusCompleted
	now := time.Now()
	i.EndDate = &now
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}
