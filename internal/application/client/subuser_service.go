package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/client"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SubuserService handles subusers under a client account
type SubuserService struct {
	subusers client.SubuserRepository
	clients  client.Repository
	logger   *zap.Logger
}

// NewSubuserService creates a new SubuserService
func NewSubuserService(subusers client.SubuserRepository, clients client.Repository, logger *zap.Logger) *SubuserService {
	return &SubuserService{
		subusers: subusers,
		clients:  clients,
		logger:   logger,
	}
}

// Create adds a subuser under an existing client
func (s *SubuserService) Create(ctx context.Context, clientID uuid.UUID, mainUser shared.Actor, name, email, role string) (*client.Subuser, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}

	sub, err := client.NewSubuser(clientID, mainUser, name, email)
	if err != nil {
		return nil, err
	}
	if role != "" {
		sub.SetRole(role)
	}
	if err := s.subusers.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListByClient returns the client's active subusers
func (s *SubuserService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]client.Subuser, error) {
	return s.subusers.ListByClient(ctx, clientID)
}

// Delete soft-deletes one subuser directly. A subuser deleted this way is
// not revived by a later client restore.
func (s *SubuserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.subusers.SoftDelete(ctx, id)
}
