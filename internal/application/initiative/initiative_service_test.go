package initiative

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/whizdome/promorama-backend/internal/domain/client"
	"github.com/whizdome/promorama-backend/internal/domain/initiative"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/domain/workforce"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"go.uber.org/zap"
)

type mockInitiativeRepo struct{ mock.Mock }

func (m *mockInitiativeRepo) Save(ctx context.Context, i *initiative.Initiative) error {
	return m.Called(ctx, i).Error(0)
}

func (m *mockInitiativeRepo) FindByID(ctx context.Context, id uuid.UUID) (*initiative.Initiative, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*initiative.Initiative), args.Error(1)
}

func (m *mockInitiativeRepo) ExistsByName(ctx context.Context, clientID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, clientID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockInitiativeRepo) List(ctx context.Context, qb *query.Builder) ([]initiative.Initiative, error) {
	args := m.Called(ctx, qb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]initiative.Initiative), args.Error(1)
}

func (m *mockInitiativeRepo) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	args := m.Called(ctx, qb)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInitiativeRepo) SoftDeleteCascade(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInitiativeRepo) RestoreCascade(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockStoreRepo struct{ mock.Mock }

func (m *mockStoreRepo) Save(ctx context.Context, s *initiative.InitiativeStore) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*initiative.InitiativeStore, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*initiative.InitiativeStore), args.Error(1)
}

func (m *mockStoreRepo) ListByInitiative(ctx context.Context, initiativeID uuid.UUID) ([]initiative.InitiativeStore, error) {
	args := m.Called(ctx, initiativeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]initiative.InitiativeStore), args.Error(1)
}

func (m *mockStoreRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) Save(ctx context.Context, c *client.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *mockClientRepo) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *mockClientRepo) List(ctx context.Context, qb *query.Builder) ([]client.Client, error) {
	args := m.Called(ctx, qb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Client), args.Error(1)
}

func (m *mockClientRepo) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	args := m.Called(ctx, qb)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClientRepo) ListRange(ctx context.Context, qb *query.Builder, skip, limit int) ([]client.Client, error) {
	args := m.Called(ctx, qb, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Client), args.Error(1)
}

func (m *mockClientRepo) SoftDeleteCascade(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClientRepo) RestoreCascade(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockEmployeeRepo struct{ mock.Mock }

func (m *mockEmployeeRepo) Save(ctx context.Context, e *workforce.Employee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEmployeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) List(ctx context.Context, qb *query.Builder) ([]workforce.Employee, error) {
	args := m.Called(ctx, qb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	args := m.Called(ctx, qb)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(t *testing.T) (*Service, *mockInitiativeRepo, *mockStoreRepo, *mockClientRepo, *mockEmployeeRepo) {
	t.Helper()
	inits := new(mockInitiativeRepo)
	stores := new(mockStoreRepo)
	clients := new(mockClientRepo)
	employees := new(mockEmployeeRepo)
	svc := NewService(inits, stores, clients, employees, zap.NewNop())
	return svc, inits, stores, clients, employees
}

func TestInitiativeService_Create(t *testing.T) {
	svc, inits, _, clients, _ := newTestService(t)

	owner, err := client.NewClient("Acme Brands", "ops@acme.test")
	require.NoError(t, err)
	clients.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	inits.On("ExistsByName", mock.Anything, owner.ID, "Summer Push").Return(false, nil)
	inits.On("Save", mock.Anything, mock.AnythingOfType("*initiative.Initiative")).Return(nil)

	i, err := svc.Create(context.Background(), CreateInput{
		ClientID: owner.ID,
		Name:     "Summer Push",
	})
	require.NoError(t, err)
	assert.Equal(t, initiative.StatusPending, i.Status)
	assert.Equal(t, owner.ID, i.ClientID)
}

func TestInitiativeService_Create_DuplicateName(t *testing.T) {
	svc, inits, _, clients, _ := newTestService(t)

	owner, err := client.NewClient("Acme Brands", "ops@acme.test")
	require.NoError(t, err)
	clients.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	inits.On("ExistsByName", mock.Anything, owner.ID, "Summer Push").Return(true, nil)

	_, err = svc.Create(context.Background(), CreateInput{ClientID: owner.ID, Name: "Summer Push"})
	require.Error(t, err)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
	inits.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInitiativeService_StartThenComplete(t *testing.T) {
	svc, inits, _, _, _ := newTestService(t)

	i, err := initiative.NewInitiative(uuid.New(), "Summer Push", "")
	require.NoError(t, err)
	inits.On("FindByID", mock.Anything, i.ID).Return(i, nil)
	inits.On("Save", mock.Anything, i).Return(nil)

	started, err := svc.Start(context.Background(), i.ID)
	require.NoError(t, err)
	assert.Equal(t, initiative.StatusOngoing, started.Status)
	require.NotNil(t, started.StartDate)

	completed, err := svc.Complete(context.Background(), i.ID)
	require.NoError(t, err)
	assert.Equal(t, initiative.StatusCompleted, completed.Status)
	require.NotNil(t, completed.EndDate)
}

func TestInitiativeService_Complete_RequiresOngoing(t *testing.T) {
	svc, inits, _, _, _ := newTestService(t)

	i, err := initiative.NewInitiative(uuid.New(), "Summer Push", "")
	require.NoError(t, err)
	inits.On("FindByID", mock.Anything, i.ID).Return(i, nil)

	_, err = svc.Complete(context.Background(), i.ID)
	require.Error(t, err)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_STATE", derr.Code)
	inits.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInitiativeService_AssignPromoter_ChecksRole(t *testing.T) {
	svc, _, stores, _, employees := newTestService(t)

	is, err := initiative.NewInitiativeStore(uuid.New(), uuid.New())
	require.NoError(t, err)
	supervisor, err := workforce.NewEmployee("Bisi", "bisi@field.test", workforce.RoleSupervisor)
	require.NoError(t, err)

	stores.On("FindByID", mock.Anything, is.ID).Return(is, nil)
	employees.On("FindByID", mock.Anything, supervisor.ID).Return(supervisor, nil)

	_, err = svc.AssignPromoter(context.Background(), is.ID, supervisor.ID)
	require.Error(t, err)
	stores.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInitiativeService_AssignSupervisor(t *testing.T) {
	svc, _, stores, _, employees := newTestService(t)

	is, err := initiative.NewInitiativeStore(uuid.New(), uuid.New())
	require.NoError(t, err)
	supervisor, err := workforce.NewEmployee("Bisi", "bisi@field.test", workforce.RoleSupervisor)
	require.NoError(t, err)

	stores.On("FindByID", mock.Anything, is.ID).Return(is, nil)
	employees.On("FindByID", mock.Anything, supervisor.ID).Return(supervisor, nil)
	stores.On("Save", mock.Anything, is).Return(nil)

	got, err := svc.AssignSupervisor(context.Background(), is.ID, supervisor.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SupervisorID)
	assert.Equal(t, supervisor.ID, *got.SupervisorID)
}

func TestInitiativeService_SetGamePrize_RejectsNegativeCount(t *testing.T) {
	svc, _, stores, _, _ := newTestService(t)

	_, err := svc.SetGamePrize(context.Background(), uuid.New(), "T-shirt", -1)
	require.Error(t, err)
	stores.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
