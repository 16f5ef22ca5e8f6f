package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/initiative"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"gorm.io/gorm"
)

// GormInitiativeRepository implements initiative.Repository using GORM
type GormInitiativeRepository struct {
	db *gorm.DB
}

// NewGormInitiativeRepository creates a new GormInitiativeRepository
func NewGormInitiativeRepository(db *gorm.DB) *GormInitiativeRepository {
	return &GormInitiativeRepository{db: db}
}

// FilterFields declares the query keys list endpoints may filter and sort on
func (r *GormInitiativeRepository) FilterFields() map[string]string {
	return map[string]string{
		"name":      "name",
		"status":    "status",
		"clientId":  "client_id",
		"agencyId":  "agency_id",
		"startDate": "start_date",
		"endDate":   "end_date",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
}

// SearchFields declares the columns free-text search runs over
func (r *GormInitiativeRepository) SearchFields() []string {
	return []string{"name", "description"}
}

// Save creates or updates an initiative
func (r *GormInitiativeRepository) Save(ctx context.Context, i *initiative.Initiative) error {
	return r.db.WithContext(ctx).Save(i).Error
}

// FindByID finds an initiative by ID
func (r *GormInitiativeRepository) FindByID(ctx context.Context, id uuid.UUID) (*initiative.Initiative, error) {
	var i initiative.Initiative
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// ExistsByName checks whether the client already has an initiative with the
// given name, deleted or not.
func (r *GormInitiativeRepository) ExistsByName(ctx context.Context, clientID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&initiative.Initiative{}).
		Where("client_id = ? AND name = ?", clientID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns initiatives matching the builder's filter, sort and window
func (r *GormInitiativeRepository) List(ctx context.Context, qb *query.Builder) ([]initiative.Initiative, error) {
	var initiatives []initiative.Initiative
	if err := r.db.WithContext(ctx).
		Model(&initiative.Initiative{}).
		Scopes(qb.Scope()).
		Find(&initiatives).Error; err != nil {
		return nil, err
	}
	return initiatives, nil
}

// Count counts initiatives matching the structural filter only
func (r *GormInitiativeRepository) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&initiative.Initiative{}).
		Scopes(qb.CountScope()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SoftDeleteCascade marks the initiative directly deleted and bulk-deletes
// its active initiative-stores in one transaction.
func (r *GormInitiativeRepository) SoftDeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&initiative.Initiative{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(directDeleteColumns(now))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&initiative.Initiative{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return nil
		}

		return tx.Model(&initiative.InitiativeStore{}).
			Where("initiative_id = ? AND is_deleted = ?", id, false).
			Updates(bulkDeleteColumns(now)).Error
	})
}

// RestoreCascade restores the initiative and only the initiative-stores that
// were bulk-deleted with it. Stores deleted on their own stay deleted.
func (r *GormInitiativeRepository) RestoreCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&initiative.Initiative{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Model(&initiative.Initiative{}).
			Where("id = ?", id).
			Updates(restoreColumns()).Error; err != nil {
			return err
		}

		return tx.Model(&initiative.InitiativeStore{}).
			Where("initiative_id = ? AND is_bulk_deleted = ?", id, true).
			Updates(restoreColumns()).Error
	})
}

// GormInitiativeStoreRepository implements initiative.StoreRepository using GORM
type GormInitiativeStoreRepository struct {
	db *gorm.DB
}

// NewGormInitiativeStoreRepository creates a new GormInitiativeStoreRepository
func NewGormInitiativeStoreRepository(db *gorm.DB) *GormInitiativeStoreRepository {
	return &GormInitiativeStoreRepository{db: db}
}

// Save creates or updates an initiative-store
func (r *GormInitiativeStoreRepository) Save(ctx context.Context, s *initiative.InitiativeStore) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// FindByID finds an initiative-store by ID
func (r *GormInitiativeStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*initiative.InitiativeStore, error) {
	var s initiative.InitiativeStore
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByInitiative returns the active initiative-stores of an initiative
func (r *GormInitiativeStoreRepository) ListByInitiative(ctx context.Context, initiativeID uuid.UUID) ([]initiative.InitiativeStore, error) {
	var stores []initiative.InitiativeStore
	if err := r.db.WithContext(ctx).
		Where("initiative_id = ? AND is_deleted = ?", initiativeID, false).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// SoftDelete marks one initiative-store directly deleted. A store deleted
// this way is skipped by a later cascade restore of its ancestors.
func (r *GormInitiativeStoreRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&initiative.InitiativeStore{}).
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

// Ensure the repositories implement their contracts
var (
	_ initiative.Repository      = (*GormInitiativeRepository)(nil)
	_ initiative.StoreRepository = (*GormInitiativeStoreRepository)(nil)
	_ query.Resource             = (*GormInitiativeRepository)(nil)
)
