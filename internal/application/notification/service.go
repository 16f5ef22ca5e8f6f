package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/notification"
	"go.uber.org/zap"
)

// Service serves the notification feed and device-token registration
type Service struct {
	notifications notification.Repository
	tokens        notification.DeviceTokenRepository
	logger        *zap.Logger
}

// NewService creates a new Service
func NewService(
	notifications notification.Repository,
	tokens notification.DeviceTokenRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		notifications: notifications,
		tokens:        tokens,
		logger:        logger,
	}
}

// ListForUser returns the user's unexpired notifications, newest first
func (s *Service) ListForUser(ctx context.Context, userID string) ([]notification.InAppNotification, error) {
	return s.notifications.ListForUser(ctx, userID)
}

// MarkRead flags one of the user's notifications as read
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID, userID string) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

// RegisterDevice records a push token for the user's device. Registering a
// token the platform already knows moves it to this user and renews its
// expiry.
func (s *Service) RegisterDevice(ctx context.Context, userID, token, platform string) error {
	d, err := notification.NewDeviceToken(userID, token, platform)
	if err != nil {
		return err
	}
	return s.tokens.Save(ctx, d)
}

// SweepExpired purges expired notifications and device tokens. The server
// runs this on a timer; it is safe to call concurrently.
func (s *Service) SweepExpired(ctx context.Context) {
	if n, err := s.notifications.DeleteExpired(ctx); err != nil {
		s.logger.Error("notification sweep failed", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("expired notifications removed", zap.Int64("count", n))
	}

	if n, err := s.tokens.DeleteExpired(ctx); err != nil {
		s.logger.Error("device token sweep failed", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("expired device tokens removed", zap.Int64("count", n))
	}
}
