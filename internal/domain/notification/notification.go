package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// RecipientAdmin is the sentinel user id addressing every platform admin.
// An empty user id addresses everyone.
const RecipientAdmin = "admin"

// TTL is how long an in-app notification stays queryable before the
// expiry sweeper removes it.
const TTL = 7 * 24 * time.Hour

// Type tags the domain event a notification came from
type Type string

const (
	TypeMessage      Type = "message"
	TypeMessageReply Type = "message_reply"
	TypeTask         Type = "task"
	TypeDeviceChange Type = "device_change"
)

// InAppNotification is the persisted notification channel. Inserting a row
// identical in (user, entity, type, description) replaces the older row so
// repeated events never pile up stale duplicates.
type InAppNotification struct {
	shared.BaseEntity
	UserID      string    `gorm:"type:varchar(100);not null;index" json:"userId"`
	EntityID    uuid.UUID `gorm:"type:uuid;not null;index" json:"entityId"`
	Type        Type      `gorm:"type:varchar(30);not null" json:"type"`
	Description string    `gorm:"type:text;not null" json:"description"`
	IsRead      bool      `gorm:"not null;default:false" json:"isRead"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"-"`
}

// TableName returns the table name for GORM
func (InAppNotification) TableName() string {
	return "notifications"
}

// NewInAppNotification creates a notification expiring after the TTL
func NewInAppNotification(userID string, entityID uuid.UUID, typ Type, description string) (*InAppNotification, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Notification description is required")
	}
	base := shared.NewBaseEntity()
	return &InAppNotification{
		BaseEntity:  base,
		UserID:      userID,
		EntityID:    entityID,
		Type:        typ,
		Description: description,
		ExpiresAt:   base.CreatedAt.Add(TTL),
	}, nil
}

// MarkRead flags the notification as read
func (n *InAppNotification) MarkRead() {
	n.IsRead = true
	n.UpdatedAt = time.Now()
}
