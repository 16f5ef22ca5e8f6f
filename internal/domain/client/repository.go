package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
)

// Repository is the persistence contract for clients. List and Count take
// the same query builder so the reported total always reflects the
// structural filter rather than the page window.
type Repository interface {
	Save(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	List(ctx context.Context, qb *query.Builder) ([]Client, error)
	Count(ctx context.Context, qb *query.Builder) (int64, error)
	ListRange(ctx context.Context, qb *query.Builder, skip, limit int) ([]Client, error)

	// SoftDeleteCascade marks the client directly deleted and bulk-deletes
	// its active initiatives, their initiative-stores and its subusers in a
	// single transaction.
	SoftDeleteCascade(ctx context.Context, id uuid.UUID) error
	// RestoreCascade restores the client and every dependent that was
	// bulk-deleted; dependents deleted directly stay deleted.
	RestoreCascade(ctx context.Context, id uuid.UUID) error
}

// SubuserRepository is the persistence contract for subusers
type SubuserRepository interface {
	Save(ctx context.Context, s *Subuser) error
	FindByID(ctx context.Context, id uuid.UUID) (*Subuser, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]Subuser, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
