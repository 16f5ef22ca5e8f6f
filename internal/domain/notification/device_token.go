package notification

import (
	"time"

	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// DeviceTokenTTL is how long a registered push token stays valid without
// being refreshed by the device.
const DeviceTokenTTL = 30 * 24 * time.Hour

// DeviceToken is a push-notification token registered by one device
type DeviceToken struct {
	shared.BaseEntity
	UserID    string    `gorm:"type:varchar(100);not null;index" json:"userId"`
	Token     string    `gorm:"type:varchar(500);not null;uniqueIndex" json:"token"`
	Platform  string    `gorm:"type:varchar(20)" json:"platform"`
	ExpiresAt time.Time `gorm:"not null;index" json:"-"`
}

// TableName returns the table name for GORM
func (DeviceToken) TableName() string {
	return "device_tokens"
}

// NewDeviceToken registers a push token for a user's device
func NewDeviceToken(userID, token, platform string) (*DeviceToken, error) {
	if token == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Device token is required")
	}
	base := shared.NewBaseEntity()
	return &DeviceToken{
		BaseEntity: base,
		UserID:     userID,
		Token:      token,
		Platform:   platform,
		ExpiresAt:  base.CreatedAt.Add(DeviceTokenTTL),
	}, nil
}

// Refresh extends the token's lifetime from now
func (d *DeviceToken) Refresh() {
	now := time.Now()
	d.ExpiresAt = now.Add(DeviceTokenTTL)
	d.UpdatedAt = now
}
