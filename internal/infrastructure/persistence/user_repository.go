package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/identity"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, u *identity.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.findOne(ctx, "email = ?", strings.ToLower(email))
}

// FindByResetTokenHash finds the user holding an unexpired reset token
func (r *GormUserRepository) FindByResetTokenHash(ctx context.Context, hash string) (*identity.User, error) {
	return r.findOne(ctx, "reset_token_hash = ? AND reset_expires_at > ?", hash, time.Now())
}

// FindByVerificationTokenHash finds the user holding an unexpired
// verification token
func (r *GormUserRepository) FindByVerificationTokenHash(ctx context.Context, hash string) (*identity.User, error) {
	return r.findOne(ctx, "verification_token_hash = ? AND verification_expires_at > ?", hash, time.Now())
}

// FindByEntityID finds the account linked to a business record
func (r *GormUserRepository) FindByEntityID(ctx context.Context, entityID uuid.UUID) (*identity.User, error) {
	return r.findOne(ctx, "entity_id = ?", entityID)
}

// UpdateSocket records or clears the user's live connection id
func (r *GormUserRepository) UpdateSocket(ctx context.Context, id uuid.UUID, socketID string) error {
	res := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"socket_id": socketID, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) findOne(ctx context.Context, cond string, args ...any) (*identity.User, error) {
	var u identity.User
	if err := r.db.WithContext(ctx).Where(cond, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Ensure GormUserRepository implements identity.UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
