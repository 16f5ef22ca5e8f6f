package workforce

import (
	"strings"

	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Agency is a marketing agency running initiatives on behalf of clients
type Agency struct {
	shared.BaseEntity
	shared.SoftDeletable
	Name  string `gorm:"type:varchar(200);not null;index" json:"name"`
	Email string `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	Phone string `gorm:"type:varchar(50)" json:"phoneNumber"`
}

// TableName returns the table name for GORM
func (Agency) TableName() string {
	return "agencies"
}

// NewAgency creates an agency record
func NewAgency(name, email string) (*Agency, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Agency name is required")
	}
	return &Agency{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      strings.ToLower(strings.TrimSpace(email)),
	}, nil
}
