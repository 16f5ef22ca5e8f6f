package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
)

// MessageRepository is the persistence contract for messages
type MessageRepository interface {
	Save(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)
	List(ctx context.Context, qb *query.Builder) ([]Message, error)
	Count(ctx context.Context, qb *query.Builder) (int64, error)
}

// TaskRepository is the persistence contract for tasks
type TaskRepository interface {
	Save(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	List(ctx context.Context, qb *query.Builder) ([]Task, error)
	Count(ctx context.Context, qb *query.Builder) (int64, error)
}
