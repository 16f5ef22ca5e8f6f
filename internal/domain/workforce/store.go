package workforce

import (
	"strings"

	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Store is a retail location where initiatives run. The (name, state, area)
// triple identifies a store; creating a duplicate is a business-rule error.
type Store struct {
	shared.BaseEntity
	shared.SoftDeletable
	Name     string `gorm:"type:varchar(200);not null;uniqueIndex:idx_store_name_state_area,priority:1" json:"name"`
	State    string `gorm:"type:varchar(100);not null;uniqueIndex:idx_store_name_state_area,priority:2" json:"state"`
	Area     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_store_name_state_area,priority:3" json:"area"`
	Phone    string `gorm:"type:varchar(50)" json:"phoneNumber"`
	Category string `gorm:"type:varchar(100);index" json:"category"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a store record
func NewStore(name, state, area string) (*Store, error) {
	name = strings.TrimSpace(name)
	state = strings.TrimSpace(state)
	area = strings.TrimSpace(area)
	if name == "" || state == "" || area == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store name, state and area are required")
	}

	return &Store{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		State:      state,
		Area:       area,
	}, nil
}
