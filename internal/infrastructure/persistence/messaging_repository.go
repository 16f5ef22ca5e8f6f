package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/messaging"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"gorm.io/gorm"
)

// GormMessageRepository implements messaging.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// FilterFields declares the query keys list endpoints may filter and sort on
func (r *GormMessageRepository) FilterFields() map[string]string {
	return map[string]string{
		"title":             "title",
		"initiativeStoreId": "initiative_store_id",
		"authorKind":        "author_kind",
		"parentId":          "parent_id",
		"createdAt":         "created_at",
		"updatedAt":         "updated_at",
	}
}

// SearchFields declares the columns free-text search runs over
func (r *GormMessageRepository) SearchFields() []string {
	return []string{"title", "description"}
}

// Save creates or updates a message
func (r *GormMessageRepository) Save(ctx context.Context, m *messaging.Message) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var m messaging.Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns messages matching the builder's filter, sort and window
func (r *GormMessageRepository) List(ctx context.Context, qb *query.Builder) ([]messaging.Message, error) {
	var messages []messaging.Message
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Scopes(qb.Scope()).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Count counts messages matching the structural filter only
func (r *GormMessageRepository) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Scopes(qb.CountScope()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormTaskRepository implements messaging.TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FilterFields declares the query keys list endpoints may filter and sort on
func (r *GormTaskRepository) FilterFields() map[string]string {
	return map[string]string{
		"title":        "title",
		"initiativeId": "initiative_id",
		"dueDate":      "due_date",
		"createdAt":    "created_at",
		"updatedAt":    "updated_at",
	}
}

// SearchFields declares the columns free-text search runs over
func (r *GormTaskRepository) SearchFields() []string {
	return []string{"title", "description"}
}

// Save creates or updates a task with its assignments
func (r *GormTaskRepository) Save(ctx context.Context, t *messaging.Task) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(t).Error
}

// FindByID finds a task by ID, loading its assignments
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Task, error) {
	var t messaging.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignments").
		First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns tasks matching the builder's filter, sort and window
func (r *GormTaskRepository) List(ctx context.Context, qb *query.Builder) ([]messaging.Task, error) {
	var tasks []messaging.Task
	if err := r.db.WithContext(ctx).
		Model(&messaging.Task{}).
		Preload("Assignments").
		Scopes(qb.Scope()).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Count counts tasks matching the structural filter only
func (r *GormTaskRepository) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Task{}).
		Scopes(qb.CountScope()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure the repositories implement their contracts
var (
	_ messaging.MessageRepository = (*GormMessageRepository)(nil)
	_ messaging.TaskRepository    = (*GormTaskRepository)(nil)
	_ query.Resource              = (*GormMessageRepository)(nil)
	_ query.Resource              = (*GormTaskRepository)(nil)
)
