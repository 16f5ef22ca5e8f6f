package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for in-app notifications.
// Save must delete a prior row identical in (user, entity, type,
// description) before inserting, so repeats replace rather than accumulate.
type Repository interface {
	Save(ctx context.Context, n *InAppNotification) error
	FindByID(ctx context.Context, id uuid.UUID) (*InAppNotification, error)
	ListForUser(ctx context.Context, userID string) ([]InAppNotification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// DeviceTokenRepository is the persistence contract for push tokens
type DeviceTokenRepository interface {
	Save(ctx context.Context, d *DeviceToken) error
	ListActiveForUser(ctx context.Context, userID string) ([]DeviceToken, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
