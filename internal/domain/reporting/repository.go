package reporting

import (
	"context"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
)

// ReportRepository is the persistence contract for sales reports.
// ListRange serves the bounded excel export window.
type ReportRepository interface {
	Save(ctx context.Context, r *Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, qb *query.Builder) ([]Report, error)
	Count(ctx context.Context, qb *query.Builder) (int64, error)
	ListRange(ctx context.Context, qb *query.Builder, skip, limit int) ([]Report, error)
}

// GameWinnerRepository is the persistence contract for game winners
type GameWinnerRepository interface {
	Save(ctx context.Context, w *GameWinner) error
	List(ctx context.Context, qb *query.Builder) ([]GameWinner, error)
	Count(ctx context.Context, qb *query.Builder) (int64, error)
	ListRange(ctx context.Context, qb *query.Builder, skip, limit int) ([]GameWinner, error)
}
