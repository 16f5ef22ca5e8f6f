package messaging

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Task is a unit of work assigned to field employees under an initiative
type Task struct {
	shared.BaseEntity
	InitiativeID uuid.UUID    `gorm:"type:uuid;not null;index" json:"initiativeId"`
	Title        string       `gorm:"type:varchar(200);not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	CreatedBy    shared.Actor `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	Assignments  []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// TaskAssignment links a task to one employee and tracks completion
type TaskAssignment struct {
	shared.BaseEntity
	TaskID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"taskId"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"employeeId"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TableName returns the table name for GORM
func (TaskAssignment) TableName() string {
	return "task_assignments"
}

// NewTask creates a task under an initiative
func NewTask(initiativeID uuid.UUID, createdBy shared.Actor, title, description string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Task title is required")
	}
	return &Task{
		BaseEntity:   shared.NewBaseEntity(),
		InitiativeID: initiativeID,
		Title:        title,
		Description:  description,
		CreatedBy:    createdBy,
	}, nil
}

// Assign adds an employee assignment, skipping duplicates
func (t *Task) Assign(employeeID uuid.UUID) {
	for _, a := range t.Assignments {
		if a.EmployeeID == employeeID {
			return
		}
	}
	t.Assignments = append(t.Assignments, TaskAssignment{
		BaseEntity: shared.NewBaseEntity(),
		TaskID:     t.ID,
		EmployeeID: employeeID,
	})
}

// AssigneeIDs returns the employee ids the task is assigned to
func (t *Task) AssigneeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(t.Assignments))
	for i, a := range t.Assignments {
		ids[i] = a.EmployeeID
	}
	return ids
}
