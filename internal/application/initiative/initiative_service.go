// Package initiative implements campaign lifecycle operations: creation,
// status transitions, store assignment and the one-level delete cascade.
package initiative

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/client"
	"github.com/whizdome/promorama-backend/internal/domain/initiative"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/domain/workforce"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"go.uber.org/zap"
)

// Service handles initiative lifecycle operations
type Service struct {
	initiatives initiative.Repository
	stores      initiative.StoreRepository
	clients     client.Repository
	employees   workforce.EmployeeRepository
	logger      *zap.Logger
}

// NewService creates a new Service
func NewService(
	initiatives initiative.Repository,
	stores initiative.StoreRepository,
	clients client.Repository,
	employees workforce.EmployeeRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		initiatives: initiatives,
		stores:      stores,
		clients:     clients,
		employees:   employees,
		logger:      logger,
	}
}

// CreateInput carries the fields for initiative creation
type CreateInput struct {
	ClientID    uuid.UUID
	AgencyID    *uuid.UUID
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Create registers a pending initiative. The name must be unique within the
// client, counting deleted initiatives so a restore never collides.
func (s *Service) Create(ctx context.Context, input CreateInput) (*initiative.Initiative, error) {
	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	exists, err := s.initiatives.ExistsByName(ctx, input.ClientID, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An initiative with this name already exists for the client")
	}

	i, err := initiative.NewInitiative(input.ClientID, input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	i.AgencyID = input.AgencyID
	if input.StartDate != nil {
		i.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		i.EndDate = input.EndDate
	}

	if err := s.initiatives.Save(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

// GetByID retrieves an initiative by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*initiative.Initiative, error) {
	return s.initiatives.FindByID(ctx, id)
}

// List returns initiatives with the structural total
func (s *Service) List(ctx context.Context, qb *query.Builder) ([]initiative.Initiative, int64, error) {
	initiatives, err := s.initiatives.List(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.initiatives.Count(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return initiatives, total, nil
}

// Start moves a pending initiative to ongoing
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*initiative.Initiative, error) {
	return s.transition(ctx, id, (*initiative.Initiative).Start)
}

// Complete closes an ongoing initiative
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*initiative.Initiative, error) {
	return s.transition(ctx, id, (*initiative.Initiative).Complete)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, apply func(*initiative.Initiative) error) (*initiative.Initiative, error) {
	i, err := s.initiatives.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(i); err != nil {
		return nil, err
	}
	if err := s.initiatives.Save(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

// Delete soft-deletes the initiative and bulk-deletes its active
// initiative-stores in one transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.initiatives.SoftDeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("initiative deleted with cascade", zap.String("initiative_id", id.String()))
	return nil
}

// Restore brings back a deleted initiative and the stores its own delete
// removed; stores deleted directly stay deleted.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.initiatives.RestoreCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("initiative restored with cascade", zap.String("initiative_id", id.String()))
	return nil
}

// AssignStore links the initiative to a physical store
func (s *Service) AssignStore(ctx context.Context, initiativeID, storeID uuid.UUID) (*initiative.InitiativeStore, error) {
	if _, err := s.initiatives.FindByID(ctx, initiativeID); err != nil {
		return nil, err
	}

	is, err := initiative.NewInitiativeStore(initiativeID, storeID)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Save(ctx, is); err != nil {
		return nil, err
	}
	return is, nil
}

// ListStores returns the initiative's active store assignments
func (s *Service) ListStores(ctx context.Context, initiativeID uuid.UUID) ([]initiative.InitiativeStore, error) {
	return s.stores.ListByInitiative(ctx, initiativeID)
}

// RemoveStore soft-deletes one store assignment directly
func (s *Service) RemoveStore(ctx context.Context, initiativeStoreID uuid.UUID) error {
	return s.stores.SoftDelete(ctx, initiativeStoreID)
}

// AssignPromoter puts a promoter on an initiative-store. The employee must
// actually hold the promoter role.
func (s *Service) AssignPromoter(ctx context.Context, initiativeStoreID, employeeID uuid.UUID) (*initiative.InitiativeStore, error) {
	return s.assignStaff(ctx, initiativeStoreID, employeeID, workforce.RolePromoter)
}

// AssignSupervisor puts a supervisor on an initiative-store
func (s *Service) AssignSupervisor(ctx context.Context, initiativeStoreID, employeeID uuid.UUID) (*initiative.InitiativeStore, error) {
	return s.assignStaff(ctx, initiativeStoreID, employeeID, workforce.RoleSupervisor)
}

func (s *Service) assignStaff(ctx context.Context, initiativeStoreID, employeeID uuid.UUID, role workforce.EmployeeRole) (*initiative.InitiativeStore, error) {
	is, err := s.stores.FindByID(ctx, initiativeStoreID)
	if err != nil {
		return nil, err
	}
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.Role != role {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee does not hold the "+string(role)+" role")
	}

	switch role {
	case workforce.RolePromoter:
		is.AssignPromoter(employeeID)
	case workforce.RoleSupervisor:
		is.AssignSupervisor(employeeID)
	}
	if err := s.stores.Save(ctx, is); err != nil {
		return nil, err
	}
	return is, nil
}

// SetGamePrize configures the in-store game on an assignment
func (s *Service) SetGamePrize(ctx context.Context, initiativeStoreID uuid.UUID, prize string, count int) (*initiative.InitiativeStore, error) {
	if count < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Prize count cannot be negative")
	}
	is, err := s.stores.FindByID(ctx, initiativeStoreID)
	if err != nil {
		return nil, err
	}
	is.GamePrize = prize
	is.PrizeCount = count
	is.IncrementVersion()
	if err := s.stores.Save(ctx, is); err != nil {
		return nil, err
	}
	return is, nil
}
