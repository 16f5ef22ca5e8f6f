// Package client implements client-account operations, including the
// soft-delete cascade over a client's initiatives, stores and subusers.
package client

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/client"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/export"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"go.uber.org/zap"
)

// clientColumns is the fixed layout of the client export
var clientColumns = []export.Column[client.Client]{
	{Header: "Company", Value: func(c client.Client) any { return c.CompanyName }},
	{Header: "Email", Value: func(c client.Client) any { return c.Email }},
	{Header: "Phone", Value: func(c client.Client) any { return c.Phone }},
	{Header: "Verified", Value: func(c client.Client) any { return c.IsVerified }},
	{Header: "Created At", Value: func(c client.Client) any { return c.CreatedAt.Format(time.RFC3339) }},
}

// Service handles client lifecycle operations
type Service struct {
	clients  client.Repository
	exporter *export.Exporter[client.Client]
	logger   *zap.Logger
}

// NewService creates a new Service
func NewService(clients client.Repository, logger *zap.Logger) *Service {
	return &Service{
		clients:  clients,
		exporter: export.NewExporter(clientColumns),
		logger:   logger,
	}
}

// Create registers a client company
func (s *Service) Create(ctx context.Context, companyName, email, phone string) (*client.Client, error) {
	existing, err := s.clients.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this email already exists")
	}

	c, err := client.NewClient(companyName, email)
	if err != nil {
		return nil, err
	}
	c.Phone = phone
	if err := s.clients.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a client by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return s.clients.FindByID(ctx, id)
}

// Update edits a client's profile fields
func (s *Service) Update(ctx context.Context, id uuid.UUID, companyName, phone, logoURL string) (*client.Client, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(companyName, phone, logoURL); err != nil {
		return nil, err
	}
	if err := s.clients.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns clients with the structural total
func (s *Service) List(ctx context.Context, qb *query.Builder) ([]client.Client, int64, error) {
	clients, err := s.clients.List(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clients.Count(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// Export builds an xlsx workbook of clients inside the requested window,
// validating the window before any query.
func (s *Service) Export(ctx context.Context, qb *query.Builder, startRange, endRange int) (*bytes.Buffer, error) {
	rng, err := export.ParseRange(startRange, endRange)
	if err != nil {
		return nil, err
	}
	rows, err := s.clients.ListRange(ctx, qb, rng.Skip(), rng.Limit())
	if err != nil {
		return nil, err
	}
	return s.exporter.Build(rows)
}

// Delete soft-deletes the client and cascades to its initiatives, their
// initiative-stores and its subusers in one transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.clients.SoftDeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client deleted with cascade", zap.String("client_id", id.String()))
	return nil
}

// Restore brings back a deleted client and every dependent the cascade
// removed; dependents deleted on their own stay deleted.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.clients.RestoreCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client restored with cascade", zap.String("client_id", id.String()))
	return nil
}
