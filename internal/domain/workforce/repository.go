package workforce

import (
	"context"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
)

// EmployeeRepository is the persistence contract for employees
type EmployeeRepository interface {
	Save(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	List(ctx context.Context, qb *query.Builder) ([]Employee, error)
	Count(ctx context.Context, qb *query.Builder) (int64, error)
}

// StoreRepository is the persistence contract for stores
type StoreRepository interface {
	Save(ctx context.Context, s *Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	ExistsByNameStateArea(ctx context.Context, name, state, area string) (bool, error)
	List(ctx context.Context, qb *query.Builder) ([]Store, error)
	Count(ctx context.Context, qb *query.Builder) (int64, error)
}

// AgencyRepository is the persistence contract for agencies
type AgencyRepository interface {
	Save(ctx context.Context, a *Agency) error
	FindByID(ctx context.Context, id uuid.UUID) (*Agency, error)
}
