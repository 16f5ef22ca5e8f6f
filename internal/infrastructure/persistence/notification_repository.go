package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/notification"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Save inserts a notification, first deleting any prior row identical in
// (user, entity, type, description). Repeats of the same event replace the
// older row instead of piling up, and the replacement resets read state and
// expiry. Delete and insert share one transaction.
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.InAppNotification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND entity_id = ? AND type = ? AND description = ?",
				n.UserID, n.EntityID, n.Type, n.Description).
			Delete(&notification.InAppNotification{}).Error; err != nil {
			return err
		}
		return tx.Create(n).Error
	})
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.InAppNotification, error) {
	var n notification.InAppNotification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// ListForUser returns unexpired notifications addressed to the user or to
// everyone, newest first. Callers pass notification.RecipientAdmin for
// admin accounts.
func (r *GormNotificationRepository) ListForUser(ctx context.Context, userID string) ([]notification.InAppNotification, error) {
	var notifications []notification.InAppNotification
	if err := r.db.WithContext(ctx).
		Where("user_id IN ? AND expires_at > ?", []string{userID, ""}, time.Now()).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, userID string) error {
	res := r.db.WithContext(ctx).
		Model(&notification.InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteExpired removes notifications past their expiry and reports how many
func (r *GormNotificationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&notification.InAppNotification{})
	return res.RowsAffected, res.Error
}

// GormDeviceTokenRepository implements notification.DeviceTokenRepository using GORM
type GormDeviceTokenRepository struct {
	db *gorm.DB
}

// NewGormDeviceTokenRepository creates a new GormDeviceTokenRepository
func NewGormDeviceTokenRepository(db *gorm.DB) *GormDeviceTokenRepository {
	return &GormDeviceTokenRepository{db: db}
}

// Save registers a device token. Re-registering an existing token moves it
// to the current user and extends its expiry instead of failing the unique
// index.
func (r *GormDeviceTokenRepository) Save(ctx context.Context, d *notification.DeviceToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("token = ?", d.Token).
			Delete(&notification.DeviceToken{}).Error; err != nil {
			return err
		}
		return tx.Create(d).Error
	})
}

// ListActiveForUser returns the user's unexpired device tokens
func (r *GormDeviceTokenRepository) ListActiveForUser(ctx context.Context, userID string) ([]notification.DeviceToken, error) {
	var tokens []notification.DeviceToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// DeleteExpired removes tokens past their expiry and reports how many
func (r *GormDeviceTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&notification.DeviceToken{})
	return res.RowsAffected, res.Error
}

// Ensure the repositories implement their contracts
var (
	_ notification.Repository            = (*GormNotificationRepository)(nil)
	_ notification.DeviceTokenRepository = (*GormDeviceTokenRepository)(nil)
)
