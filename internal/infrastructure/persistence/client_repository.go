package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/client"
	"github.com/whizdome/promorama-backend/internal/domain/initiative"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"gorm.io/gorm"
)

// GormClientRepository implements client.Repository using GORM. It owns the
// soft-delete cascade because all four stages must share one transaction.
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FilterFields declares the query keys list endpoints may filter and sort on
func (r *GormClientRepository) FilterFields() map[string]string {
	return map[string]string{
		"companyName": "company_name",
		"email":       "email",
		"phoneNumber": "phone",
		"isVerified":  "is_verified",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	}
}

// SearchFields declares the columns free-text search runs over
func (r *GormClientRepository) SearchFields() []string {
	return []string{"company_name", "email"}
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, c *client.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// FindByID finds a client by ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var c client.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByEmail finds a client by email
func (r *GormClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	var c client.Client
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns clients matching the builder's filter, sort and window
func (r *GormClientRepository) List(ctx context.Context, qb *query.Builder) ([]client.Client, error) {
	var clients []client.Client
	if err := r.db.WithContext(ctx).
		Model(&client.Client{}).
		Scopes(qb.Scope()).
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Count counts clients matching the structural filter only
func (r *GormClientRepository) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&client.Client{}).
		Scopes(qb.CountScope()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListRange returns an explicit skip/limit window for exports
func (r *GormClientRepository) ListRange(ctx context.Context, qb *query.Builder, skip, limit int) ([]client.Client, error) {
	var clients []client.Client
	if err := r.db.WithContext(ctx).
		Model(&client.Client{}).
		Scopes(qb.RangeScope(skip, limit)).
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// SoftDeleteCascade marks the client directly deleted, then bulk-deletes the
// initiative-stores of its active initiatives, those initiatives, and its
// subusers. One transaction covers all four stages; any failure rolls the
// whole cascade back. Rows already deleted keep their markers untouched.
func (r *GormClientRepository) SoftDeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&client.Client{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(directDeleteColumns(now))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return clientDeleteNoop(tx, id)
		}

		var initiativeIDs []uuid.UUID
		if err := tx.Model(&initiative.Initiative{}).
			Where("client_id = ? AND is_deleted = ?", id, false).
			Pluck("id", &initiativeIDs).Error; err != nil {
			return err
		}

		if len(initiativeIDs) > 0 {
			if err := tx.Model(&initiative.InitiativeStore{}).
				Where("initiative_id IN ? AND is_deleted = ?", initiativeIDs, false).
				Updates(bulkDeleteColumns(now)).Error; err != nil {
				return err
			}
			if err := tx.Model(&initiative.Initiative{}).
				Where("id IN ?", initiativeIDs).
				Updates(bulkDeleteColumns(now)).Error; err != nil {
				return err
			}
		}

		return tx.Model(&client.Subuser{}).
			Where("client_id = ? AND is_deleted = ?", id, false).
			Updates(bulkDeleteColumns(now)).Error
	})
}

// RestoreCascade restores the client and only the dependents that were
// bulk-deleted. A dependent deleted on its own before the cascade keeps
// is_bulk_deleted=false and stays deleted. Restoring an active client is a
// state-wise no-op.
//
// Eligibility is the bulk flag alone; a dependent re-parented to another
// client between cascade delete and restore is not guarded against.
func (r *GormClientRepository) RestoreCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&client.Client{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Model(&client.Client{}).
			Where("id = ?", id).
			Updates(restoreColumns()).Error; err != nil {
			return err
		}

		var initiativeIDs []uuid.UUID
		if err := tx.Model(&initiative.Initiative{}).
			Where("client_id = ? AND is_bulk_deleted = ?", id, true).
			Pluck("id", &initiativeIDs).Error; err != nil {
			return err
		}

		if len(initiativeIDs) > 0 {
			if err := tx.Model(&initiative.InitiativeStore{}).
				Where("initiative_id IN ? AND is_bulk_deleted = ?", initiativeIDs, true).
				Updates(restoreColumns()).Error; err != nil {
				return err
			}
			if err := tx.Model(&initiative.Initiative{}).
				Where("id IN ?", initiativeIDs).
				Updates(restoreColumns()).Error; err != nil {
				return err
			}
		}

		return tx.Model(&client.Subuser{}).
			Where("client_id = ? AND is_bulk_deleted = ?", id, true).
			Updates(restoreColumns()).Error
	})
}

// clientDeleteNoop distinguishes a missing client from an already-deleted
// one when the delete update matched no row.
func clientDeleteNoop(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&client.Client{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func directDeleteColumns(now time.Time) map[string]any {
	return map[string]any{
		"is_deleted":      true,
		"deleted_at":      now,
		"is_bulk_deleted": false,
		"updated_at":      now,
	}
}

func bulkDeleteColumns(now time.Time) map[string]any {
	return map[string]any{
		"is_deleted":      true,
		"deleted_at":      now,
		"is_bulk_deleted": true,
		"updated_at":      now,
	}
}

func restoreColumns() map[string]any {
	return map[string]any{
		"is_deleted":      false,
		"deleted_at":      nil,
		"is_bulk_deleted": false,
		"updated_at":      time.Now(),
	}
}

// Ensure GormClientRepository implements its contracts
var (
	_ client.Repository = (*GormClientRepository)(nil)
	_ query.Resource    = (*GormClientRepository)(nil)
)
