package initiative

import (
	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// InitiativeStore assigns an initiative to a physical store with the field
// staff running it there. Promoter and supervisor drive message routing:
// a message written by one notifies the other.
type InitiativeStore struct {
	shared.BaseEntity
	shared.SoftDeletable
	InitiativeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"initiativeId"`
	StoreID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"storeId"`
	PromoterID   *uuid.UUID `gorm:"type:uuid;index" json:"promoterId,omitempty"`
	SupervisorID *uuid.UUID `gorm:"type:uuid;index" json:"supervisorId,omitempty"`
	GamePrize    string     `gorm:"type:varchar(200)" json:"gamePrize"`
	PrizeCount   int        `gorm:"not null;default:0" json:"prizeCount"`
}

// TableName returns the table name for GORM
func (InitiativeStore) TableName() string {
	return "initiative_stores"
}

// NewInitiativeStore links an initiative to a store
func NewInitiativeStore(initiativeID, storeID uuid.UUID) (*InitiativeStore, error) {
	if initiativeID == uuid.Nil || storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Initiative and store are required")
	}
	return &InitiativeStore{
		BaseEntity:   shared.NewBaseEntity(),
		InitiativeID: initiativeID,
		StoreID:      storeID,
	}, nil
}

// AssignPromoter sets the promoter working the store
func (s *InitiativeStore) AssignPromoter(employeeID uuid.UUID) {
	s.PromoterID = &employeeID
	s.IncrementVersion()
}

// AssignSupervisor sets the supervisor overseeing the store
func (s *InitiativeStore) AssignSupervisor(employeeID uuid.UUID) {
	s.SupervisorID = &employeeID
	s.IncrementVersion()
}
