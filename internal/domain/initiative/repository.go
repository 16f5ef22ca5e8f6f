package initiative

import (
	"context"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
)

// Repository is the persistence contract for initiatives
type Repository interface {
	Save(ctx context.Context, i *Initiative) error
	FindByID(ctx context.Context, id uuid.UUID) (*Initiative, error)
	ExistsByName(ctx context.Context, clientID uuid.UUID, name string) (bool, error)
	List(ctx context.Context, qb *query.Builder) ([]Initiative, error)
	Count(ctx context.Context, qb *query.Builder) (int64, error)

	// SoftDeleteCascade marks the initiative directly deleted and
	// bulk-deletes its active initiative-stores in one transaction.
	SoftDeleteCascade(ctx context.Context, id uuid.UUID) error
	// RestoreCascade restores the initiative and only its bulk-deleted
	// initiative-stores.
	RestoreCascade(ctx context.Context, id uuid.UUID) error
}

// StoreRepository is the persistence contract for initiative-stores
type StoreRepository interface {
	Save(ctx context.Context, s *InitiativeStore) error
	FindByID(ctx context.Context, id uuid.UUID) (*InitiativeStore, error)
	ListByInitiative(ctx context.Context, initiativeID uuid.UUID) ([]InitiativeStore, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
