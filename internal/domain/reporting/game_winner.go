package reporting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// GameWinner records a shopper who won an in-store game prize
type GameWinner struct {
	shared.BaseEntity
	InitiativeStoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"initiativeStoreId"`
	WinnerName        string    `gorm:"type:varchar(200);not null" json:"winnerName"`
	Phone             string    `gorm:"type:varchar(50)" json:"phoneNumber"`
	Prize             string    `gorm:"type:varchar(200);not null" json:"prize"`
	WonAt             time.Time `gorm:"not null;index" json:"wonAt"`
}

// TableName returns the table name for GORM
func (GameWinner) TableName() string {
	return "game_winners"
}

// NewGameWinner records a prize win at an initiative-store
func NewGameWinner(initiativeStoreID uuid.UUID, winnerName, prize string, wonAt time.Time) (*GameWinner, error) {
	winnerName = strings.TrimSpace(winnerName)
	if winnerName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Winner name is required")
	}
	if strings.TrimSpace(prize) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Prize is required")
	}

	return &GameWinner{
		BaseEntity:        shared.NewBaseEntity(),
		InitiativeStoreID: initiativeStoreID,
		WinnerName:        winnerName,
		Prize:             prize,
		WonAt:             wonAt,
	}, nil
}
