package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/whizdome/promorama-backend/internal/domain/identity"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/auth"
	"github.com/whizdome/promorama-backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

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

func newTestAuthService(repo *mockUserRepo) *AuthService {
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                "0123456789abcdef0123456789abcdef",
		AccessTokenExpiration: time.Hour,
		Issuer:                "promorama-test",
	})
	return NewAuthService(repo, jwtSvc, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)
	entityID := uuid.New()

	repo.On("FindByEmail", mock.Anything, "ops@acme.test").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	res, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Ops@Acme.test",
		Password: "s3cret-pass",
		Role:     shared.ActorClient,
		EntityID: &entityID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.test", res.User.Email)
	assert.False(t, res.User.IsVerified)
	assert.NotEmpty(t, res.VerificationToken)
	assert.Equal(t, identity.HashCredentialToken(res.VerificationToken), res.User.VerificationTokenHash,
		"only the hash is stored")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	existing, err := identity.NewUser("ops@acme.test", "s3cret-pass", shared.ActorClient)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "ops@acme.test").Return(existing, nil)

	_, err = svc.Register(context.Background(), RegisterInput{
		Email: "ops@acme.test", Password: "s3cret-pass", Role: shared.ActorClient,
	})
	require.Error(t, err)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
}

func TestAuthService_Login(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	entityID := uuid.New()
	u, err := identity.NewUser("ops@acme.test", "s3cret-pass", shared.ActorClient)
	require.NoError(t, err)
	u.EntityID = &entityID
	repo.On("FindByEmail", mock.Anything, "ops@acme.test").Return(u, nil)

	res, err := svc.Login(context.Background(), "ops@acme.test", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	// The token resolves back to the client entity, not the account id
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                "0123456789abcdef0123456789abcdef",
		AccessTokenExpiration: time.Hour,
		Issuer:                "promorama-test",
	})
	claims, err := jwtSvc.Validate(res.Token)
	require.NoError(t, err)
	actor, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, shared.ActorClient, actor.Kind)
	assert.Equal(t, entityID, actor.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	u, err := identity.NewUser("ops@acme.test", "s3cret-pass", shared.ActorClient)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "ops@acme.test").Return(u, nil)

	_, err = svc.Login(context.Background(), "ops@acme.test", "wrong-pass")
	require.Error(t, err)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "ghost@acme.test").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), "ghost@acme.test", "whatever1")
	require.Error(t, err)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code, "unknown email is indistinguishable from wrong password")
}

func TestAuthService_VerifyEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	u, err := identity.NewUser("ops@acme.test", "s3cret-pass", shared.ActorClient)
	require.NoError(t, err)
	raw, err := u.BeginVerification()
	require.NoError(t, err)

	repo.On("FindByVerificationTokenHash", mock.Anything, identity.HashCredentialToken(raw)).Return(u, nil)
	repo.On("Save", mock.Anything, u).Return(nil)

	got, err := svc.VerifyEmail(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Empty(t, got.VerificationTokenHash, "token is consumed")
}

func TestAuthService_PasswordReset_RoundTrip(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	u, err := identity.NewUser("ops@acme.test", "s3cret-pass", shared.ActorClient)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "ops@acme.test").Return(u, nil)
	repo.On("Save", mock.Anything, u).Return(nil)

	raw, err := svc.BeginPasswordReset(context.Background(), "ops@acme.test")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	repo.On("FindByResetTokenHash", mock.Anything, identity.HashCredentialToken(raw)).Return(u, nil)
	require.NoError(t, svc.CompletePasswordReset(context.Background(), raw, "n3w-secret"))

	assert.True(t, u.CheckPassword("n3w-secret"))
	assert.False(t, u.CheckPassword("s3cret-pass"))
	assert.Empty(t, u.ResetTokenHash, "reset token is single-use")
}

func TestAuthService_BeginPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "ghost@acme.test").Return(nil, shared.ErrNotFound)

	raw, err := svc.BeginPasswordReset(context.Background(), "ghost@acme.test")
	require.NoError(t, err)
	assert.Empty(t, raw)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_SocketLifecycle(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)
	id := uuid.New()

	repo.On("UpdateSocket", mock.Anything, id, "sock-77").Return(nil)
	repo.On("UpdateSocket", mock.Anything, id, "").Return(nil)

	require.NoError(t, svc.AttachSocket(context.Background(), id, "sock-77"))
	require.NoError(t, svc.DetachSocket(context.Background(), id))

	err := svc.AttachSocket(context.Background(), id, "")
	require.Error(t, err, "empty socket id only through detach")
}
