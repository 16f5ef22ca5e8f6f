package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository is the persistence contract for login accounts
type UserRepository interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetTokenHash(ctx context.Context, hash string) (*User, error)
	FindByVerificationTokenHash(ctx context.Context, hash string) (*User, error)
	FindByEntityID(ctx context.Context, entityID uuid.UUID) (*User, error)
	UpdateSocket(ctx context.Context, id uuid.UUID, socketID string) error
}
