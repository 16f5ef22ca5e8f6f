package messaging

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/whizdome/promorama-backend/internal/domain/identity"
	"github.com/whizdome/promorama-backend/internal/domain/initiative"
	"github.com/whizdome/promorama-backend/internal/domain/messaging"
	"github.com/whizdome/promorama-backend/internal/domain/notification"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"go.uber.org/zap"
)

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Save(ctx context.Context, msg *messaging.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Message), args.Error(1)
}

func (m *mockMessageRepo) List(ctx context.Context, qb *query.Builder) ([]messaging.Message, error) {
	args := m.Called(ctx, qb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]messaging.Message), args.Error(1)
}

func (m *mockMessageRepo) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	args := m.Called(ctx, qb)
	return args.Get(0).(int64), args.Error(1)
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
	return nil, args.Error(1)
}

func (m *mockStoreRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

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
	return nil, args.Error(1)
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

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Save(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindByResetTokenHash(ctx context.Context, hash string) (*identity.User, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindByVerificationTokenHash(ctx context.Context, hash string) (*identity.User, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEntityID(ctx context.Context, entityID uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) UpdateSocket(ctx context.Context, id uuid.UUID, socketID string) error {
	return m.Called(ctx, id, socketID).Error(0)
}

type capturedEvents struct {
	events []notification.Event
}

func (c *capturedEvents) Deliver(event notification.Event) {
	c.events = append(c.events, event)
}

func userWithSocket(entityID uuid.UUID, socketID string) *identity.User {
	return &identity.User{
		BaseEntity: shared.NewBaseEntity(),
		EntityID:   &entityID,
		SocketID:   socketID,
	}
}

func TestMessageService_Create(t *testing.T) {
	messages := new(mockMessageRepo)
	stores := new(mockStoreRepo)
	inits := new(mockInitiativeRepo)
	users := new(mockUserRepo)
	sink := &capturedEvents{}
	svc := NewMessageService(messages, stores, inits, users, sink, zap.NewNop())

	clientID := uuid.New()
	promoterID := uuid.New()
	supervisorID := uuid.New()

	init, _ := initiative.NewInitiative(clientID, "Summer Push", "")
	store, _ := initiative.NewInitiativeStore(init.ID, uuid.New())
	store.AssignPromoter(promoterID)
	store.AssignSupervisor(supervisorID)

	clientUser := userWithSocket(clientID, "sock-client")
	supervisorUser := userWithSocket(supervisorID, "")

	stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	inits.On("FindByID", mock.Anything, init.ID).Return(init, nil)
	users.On("FindByEntityID", mock.Anything, clientID).Return(clientUser, nil)
	users.On("FindByEntityID", mock.Anything, promoterID).Return(nil, shared.ErrNotFound)
	users.On("FindByEntityID", mock.Anything, supervisorID).Return(supervisorUser, nil)
	messages.On("Save", mock.Anything, mock.AnythingOfType("*messaging.Message")).Return(nil)

	author := shared.Actor{Kind: shared.ActorPromoter, ID: promoterID}
	m, err := svc.Create(context.Background(), store.ID, author, "Shelf check", "Shelf 4 is empty")
	require.NoError(t, err)
	assert.Equal(t, "Shelf check", m.Title)
	assert.False(t, m.IsResponse())

	require.Len(t, sink.events, 1)
	event := sink.events[0]
	assert.Equal(t, notification.TypeMessage, event.Type)
	assert.Equal(t, m.ID, event.EntityID)
	assert.Equal(t, clientUser.ID.String(), event.ClientUserID)
	assert.Equal(t, "sock-client", event.ClientSocketID)
	assert.Equal(t, supervisorUser.ID.String(), event.SupervisorUserID)
	assert.Empty(t, event.AgencyUserID, "initiative has no agency")

	// The promoter wrote it, so the recipient set holds the supervisor
	var recipientIDs []string
	for _, r := range event.Recipients() {
		recipientIDs = append(recipientIDs, r.UserID)
	}
	assert.Contains(t, recipientIDs, supervisorUser.ID.String())
	assert.NotContains(t, recipientIDs, event.PromoterUserID)
}

func TestMessageService_Respond(t *testing.T) {
	messages := new(mockMessageRepo)
	stores := new(mockStoreRepo)
	inits := new(mockInitiativeRepo)
	users := new(mockUserRepo)
	sink := &capturedEvents{}
	svc := NewMessageService(messages, stores, inits, users, sink, zap.NewNop())

	clientID := uuid.New()
	init, _ := initiative.NewInitiative(clientID, "Summer Push", "")
	store, _ := initiative.NewInitiativeStore(init.ID, uuid.New())
	parent, _ := messaging.NewMessage(store.ID, shared.Actor{Kind: shared.ActorPromoter, ID: uuid.New()}, "Shelf check", "Shelf 4 is empty")

	messages.On("FindByID", mock.Anything, parent.ID).Return(parent, nil)
	stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	inits.On("FindByID", mock.Anything, init.ID).Return(init, nil)
	users.On("FindByEntityID", mock.Anything, clientID).Return(nil, shared.ErrNotFound)
	messages.On("Save", mock.Anything, mock.AnythingOfType("*messaging.Message")).Return(nil)

	responder := shared.Actor{Kind: shared.ActorClient, ID: clientID}
	m, err := svc.Respond(context.Background(), parent.ID, responder, "Restock on the way")
	require.NoError(t, err)
	assert.Equal(t, "Re: Shelf check", m.Title)
	assert.True(t, m.IsResponse())
	assert.Equal(t, parent.ID, *m.ParentID)

	require.Len(t, sink.events, 1)
	assert.Equal(t, notification.TypeMessageReply, sink.events[0].Type)
	assert.Equal(t, responder, sink.events[0].Actor)
}

func TestMessageService_RespondUnknownParent(t *testing.T) {
	messages := new(mockMessageRepo)
	stores := new(mockStoreRepo)
	inits := new(mockInitiativeRepo)
	users := new(mockUserRepo)
	sink := &capturedEvents{}
	svc := NewMessageService(messages, stores, inits, users, sink, zap.NewNop())

	parentID := uuid.New()
	messages.On("FindByID", mock.Anything, parentID).Return(nil, shared.ErrNotFound)

	_, err := svc.Respond(context.Background(), parentID, shared.Actor{Kind: shared.ActorClient, ID: uuid.New()}, "hello")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, sink.events, "no event without a saved response")
}
