package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/client"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSubuserRepository implements client.SubuserRepository using GORM
type GormSubuserRepository struct {
	db *gorm.DB
}

// NewGormSubuserRepository creates a new GormSubuserRepository
func NewGormSubuserRepository(db *gorm.DB) *GormSubuserRepository {
	return &GormSubuserRepository{db: db}
}

// Save creates or updates a subuser
func (r *GormSubuserRepository) Save(ctx context.Context, s *client.Subuser) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// FindByID finds a subuser by ID
func (r *GormSubuserRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Subuser, error) {
	var s client.Subuser
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByClient returns the active subusers of a client
func (r *GormSubuserRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]client.Subuser, error) {
	var subusers []client.Subuser
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND is_deleted = ?", clientID, false).
		Order("created_at DESC").
		Find(&subusers).Error; err != nil {
		return nil, err
	}
	return subusers, nil
}

// SoftDelete marks one subuser directly deleted
func (r *GormSubuserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&client.Subuser{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(directDeleteColumns(time.Now()))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSubuserRepository implements client.SubuserRepository
var _ client.SubuserRepository = (*GormSubuserRepository)(nil)
