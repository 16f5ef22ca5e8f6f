package reporting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Report is a daily sales report a promoter files for an initiative-store
type Report struct {
	shared.BaseEntity
	InitiativeStoreID uuid.UUID       `gorm:"type:uuid;not null;index" json:"initiativeStoreId"`
	EmployeeID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"employeeId"`
	Date              time.Time       `gorm:"not null;index" json:"date"`
	BrandName         string          `gorm:"type:varchar(200);not null" json:"brandName"`
	UnitsSold         int             `gorm:"not null" json:"unitsSold"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unitPrice"`
	TotalValue        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"totalValue"`
	Comment           string          `gorm:"type:text" json:"comment"`
}

// TableName returns the table name for GORM
func (Report) TableName() string {
	return "reports"
}

// NewReport creates a sales report; total value is derived, never accepted
// from the caller.
func NewReport(initiativeStoreID, employeeID uuid.UUID, date time.Time, brand string, units int, unitPrice decimal.Decimal) (*Report, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Brand name is required")
	}
	if units < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Units sold cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	return &Report{
		BaseEntity:        shared.NewBaseEntity(),
		InitiativeStoreID: initiativeStoreID,
		EmployeeID:        employeeID,
		Date:              date,
		BrandName:         brand,
		UnitsSold:         units,
		UnitPrice:         unitPrice,
		TotalValue:        unitPrice.Mul(decimal.NewFromInt(int64(units))),
	}, nil
}
