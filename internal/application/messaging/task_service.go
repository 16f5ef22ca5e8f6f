package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/identity"
	"github.com/whizdome/promorama-backend/internal/domain/messaging"
	"github.com/whizdome/promorama-backend/internal/domain/notification"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"go.uber.org/zap"
)

// TaskService handles task creation and assignment
type TaskService struct {
	tasks  messaging.TaskRepository
	users  identity.UserRepository
	events EventSink
	logger *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	tasks messaging.TaskRepository,
	users identity.UserRepository,
	events EventSink,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:  tasks,
		users:  users,
		events: events,
		logger: logger,
	}
}

// CreateTaskInput carries the fields for task creation
type CreateTaskInput struct {
	InitiativeID uuid.UUID
	Title        string
	Description  string
	DueDate      *time.Time
	AssigneeIDs  []uuid.UUID
}

// Create creates a task, assigns it and notifies every assignee
func (s *TaskService) Create(ctx context.Context, createdBy shared.Actor, input CreateTaskInput) (*messaging.Task, error) {
	t, err := messaging.NewTask(input.InitiativeID, createdBy, input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	t.DueDate = input.DueDate
	for _, id := range input.AssigneeIDs {
		t.Assign(id)
	}

	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, err
	}

	s.events.Deliver(notification.Event{
		Type:          notification.TypeTask,
		EntityID:      t.ID,
		Description:   fmt.Sprintf("New task: %s", t.Title),
		Actor:         createdBy,
		TargetUserIDs: s.resolveAssignees(ctx, t.AssigneeIDs()),
	})
	return t, nil
}

// Assign adds employees to an existing task and notifies the new assignees
func (s *TaskService) Assign(ctx context.Context, taskID uuid.UUID, employeeIDs []uuid.UUID) (*messaging.Task, error) {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	before := make(map[uuid.UUID]bool, len(t.Assignments))
	for _, id := range t.AssigneeIDs() {
		before[id] = true
	}

	var added []uuid.UUID
	for _, id := range employeeIDs {
		if !before[id] {
			added = append(added, id)
		}
		t.Assign(id)
	}
	if len(added) == 0 {
		return t, nil
	}

	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, err
	}

	s.events.Deliver(notification.Event{
		Type:          notification.TypeTask,
		EntityID:      t.ID,
		Description:   fmt.Sprintf("New task: %s", t.Title),
		TargetUserIDs: s.resolveAssignees(ctx, added),
	})
	return t, nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*messaging.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// List returns tasks with the structural total
func (s *TaskService) List(ctx context.Context, qb *query.Builder) ([]messaging.Task, int64, error) {
	tasks, err := s.tasks.List(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tasks.Count(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// resolveAssignees maps employee records to their login accounts. An
// assignee with no account simply gets no notification.
func (s *TaskService) resolveAssignees(ctx context.Context, employeeIDs []uuid.UUID) []string {
	out := make([]string, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		user, err := s.users.FindByEntityID(ctx, id)
		if err != nil {
			s.logger.Debug("assignee has no account", zap.String("employee_id", id.String()))
			continue
		}
		out = append(out, user.ID.String())
	}
	return out
}
