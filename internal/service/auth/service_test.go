package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/config"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/events"
	"github.com/quickrecap/quickrecap-api/internal/mocks"
	"github.com/quickrecap/quickrecap-api/internal/service/auth"
	"github.com/quickrecap/quickrecap-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc     *auth.Service
	users   *mocks.MockUserStore
	revoked *mocks.MockRevokedTokenStore
	tokens  auth.JWTService
	emitted []string
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)

	f := &authFixture{
		users:   mocks.NewMockUserStore(),
		revoked: mocks.NewMockRevokedTokenStore(),
		tokens:  tokens,
	}
	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(events.HandlerFunc(func(_ context.Context, e *events.Event) error {
		f.emitted = append(f.emitted, e.Type)
		return nil
	}))

	f.svc, err = auth.NewService(auth.Deps{
		Users:   f.users,
		Hasher:  &mocks.MockPasswordHasher{},
		Tokens:  tokens,
		Revoked: f.revoked,
		Emitter: emitter,
	})
	require.NoError(t, err)
	return f
}

func registration() domain.Registration {
	return domain.Registration{
		Email:     "a@x.com",
		Password:  "secret123",
		Nombres:   "Ana",
		Apellidos: "Ruiz",
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := auth.NewService(auth.Deps{})
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, pair, err := f.svc.Register(ctx, registration())
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Ana", user.Nombres)
	assert.NotEqual(t, "secret123", user.HashedPassword)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, []string{events.TypeUserRegistered}, f.emitted)

	claims, err := f.tokens.ValidateToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	t.Run("duplicate email", func(t *testing.T) {
		reg := registration()
		reg.Email = " A@X.COM "
		_, _, err := f.svc.Register(ctx, reg)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		reg := registration()
		reg.Email = "b@x.com"
		reg.Password = "short"
		_, _, err := f.svc.Register(ctx, reg)
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
		_, lookupErr := f.users.GetByEmail(ctx, "b@x.com")
		assert.ErrorIs(t, lookupErr, store.ErrUserNotFound)
	})
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	registered, _, err := f.svc.Register(ctx, registration())
	require.NoError(t, err)

	user, pair, err := f.svc.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, pair.AccessToken)

	_, _, err = f.svc.Login(ctx, "a@x.com", "wrong-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, _, err = f.svc.Login(ctx, "nobody@x.com", "secret123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, pair, err := f.svc.Register(ctx, registration())
	require.NoError(t, err)

	next, err := f.svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	claims, err := f.tokens.ValidateToken(ctx, next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRevokedToken, "a refresh token is single use")

	_, err = f.svc.Refresh(ctx, next.AccessToken)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)

	_, err = f.svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestRefreshForDeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	token, err := f.tokens.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestConcurrentRefreshWithSameToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, pair, err := f.svc.Register(ctx, registration())
	require.NoError(t, err)

	// Both requests see the token as live before either revokes it.
	var checked sync.WaitGroup
	checked.Add(2)
	f.revoked.IsRevokedFn = func(context.Context, string) (bool, error) {
		checked.Done()
		checked.Wait()
		return false, nil
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Refresh(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, auth.ErrRevokedToken)
	}
	assert.Equal(t, 1, succeeded, "one refresh token yields one new pair")
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, pair, err := f.svc.Register(ctx, registration())
	require.NoError(t, err)

	t.Run("token of another user", func(t *testing.T) {
		err := f.svc.Logout(ctx, uuid.New(), pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
		assert.Empty(t, f.revoked.Revoked)
	})

	require.NoError(t, f.svc.Logout(ctx, user.ID, pair.RefreshToken))
	assert.Len(t, f.revoked.Revoked, 1)

	_, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRevokedToken)

	assert.NoError(t, f.svc.Logout(ctx, user.ID, pair.RefreshToken), "logging out twice is harmless")
}

func TestLogoutPropagatesRevocationFailure(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, pair, err := f.svc.Register(ctx, registration())
	require.NoError(t, err)

	f.revoked.RevokeErr = errors.New("redis down")
	assert.ErrorIs(t, f.svc.Logout(ctx, user.ID, pair.RefreshToken), f.revoked.RevokeErr)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, _, err := f.svc.Register(ctx, registration())
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, user.ID, "wrong-old", "newsecret1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	err = f.svc.ChangePassword(ctx, user.ID, "secret123", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	assert.Equal(t, "new_password", domain.FieldOf(err))

	err = f.svc.ChangePassword(ctx, user.ID, "", "newsecret1")
	assert.Equal(t, "old_password", domain.FieldOf(err))

	require.NoError(t, f.svc.ChangePassword(ctx, user.ID, "secret123", "newsecret1"))

	_, _, err = f.svc.Login(ctx, "a@x.com", "secret123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, _, err = f.svc.Login(ctx, "a@x.com", "newsecret1")
	assert.NoError(t, err)

	err = f.svc.ChangePassword(ctx, uuid.New(), "secret123", "newsecret1")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
