package workforce

import (
	"strings"

	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// EmployeeRole distinguishes field staff duties
type EmployeeRole string

const (
	RolePromoter   EmployeeRole = "promoter"
	RoleSupervisor EmployeeRole = "supervisor"
)

// Employee is a field worker assignable to initiative-stores
type Employee struct {
	shared.BaseEntity
	shared.SoftDeletable
	Name   string       `gorm:"type:varchar(200);not null;index" json:"name"`
	Email  string       `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	Phone  string       `gorm:"type:varchar(50)" json:"phoneNumber"`
	Role   EmployeeRole `gorm:"type:varchar(20);not null" json:"role"`
	Team   string       `gorm:"type:varchar(100);index" json:"team"`
	Region string       `gorm:"type:varchar(100);index" json:"region"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a field employee
func NewEmployee(name, email string, role EmployeeRole) (*Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee name is required")
	}
	if role != RolePromoter && role != RoleSupervisor {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee role must be promoter or supervisor")
	}

	return &Employee{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Role:       role,
	}, nil
}
