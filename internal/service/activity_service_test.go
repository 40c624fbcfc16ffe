package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/mocks"
	"github.com/quickrecap/quickrecap-api/internal/service"
	"github.com/quickrecap/quickrecap-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activityFixture struct {
	svc        service.ActivityService
	activities *mocks.MockActivityStore
	favorites  *mocks.MockFavoriteStore
}

func newActivityFixture(t *testing.T) *activityFixture {
	t.Helper()
	f := &activityFixture{
		activities: mocks.NewMockActivityStore(),
		favorites:  mocks.NewMockFavoriteStore(),
	}
	var err error
	f.svc, err = service.NewActivityService(f.activities, f.favorites, nil)
	require.NoError(t, err)
	return f
}

func (f *activityFixture) favorite(t *testing.T, userID, activityID uuid.UUID) {
	t.Helper()
	fav, err := domain.NewFavorite(userID, activityID)
	require.NoError(t, err)
	require.NoError(t, f.favorites.Add(context.Background(), fav))
}

func TestActivityService_Create(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()
	caller := uuid.New()
	input := domain.NewActivity{
		TipoActividad:     "quiz",
		TiempoPorPregunta: 20,
		NumeroPreguntas:   5,
		Nombre:            "Capitales",
	}

	view, err := f.svc.Create(ctx, caller, input)
	require.NoError(t, err)
	assert.Equal(t, caller, view.Activity.UserID, "usuario defaults to the caller")
	assert.False(t, view.Favourite)
	assert.Contains(t, f.activities.Activities, view.Activity.ID)

	input.UserID = caller
	_, err = f.svc.Create(ctx, caller, input)
	assert.NoError(t, err)

	input.UserID = uuid.New()
	_, err = f.svc.Create(ctx, caller, input)
	assert.ErrorIs(t, err, service.ErrNotOwned)

	input.UserID = uuid.Nil
	input.Nombre = ""
	_, err = f.svc.Create(ctx, caller, input)
	assert.Equal(t, "nombre", domain.FieldOf(err))
}

func TestActivityService_FavouriteFlag(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	liked := newTestActivity(t, f.activities, alice, "Liked", false)
	other := newTestActivity(t, f.activities, alice, "Other", false)
	f.favorite(t, alice, liked.ID)
	f.favorite(t, bob, other.ID)

	view, err := f.svc.Get(ctx, alice, liked.ID)
	require.NoError(t, err)
	assert.True(t, view.Favourite)

	view, err = f.svc.Get(ctx, alice, other.ID)
	require.NoError(t, err)
	assert.False(t, view.Favourite, "another user's favorite does not count")

	views, err := f.svc.List(ctx, alice, service.ScopeOwn, store.Page{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	flags := map[uuid.UUID]bool{}
	for _, v := range views {
		flags[v.Activity.ID] = v.Favourite
	}
	assert.Equal(t, map[uuid.UUID]bool{liked.ID: true, other.ID: false}, flags)

	views, err = f.svc.List(ctx, bob, service.ScopePublic, store.Page{})
	require.NoError(t, err)
	for _, v := range views {
		assert.Equal(t, v.Activity.ID == other.ID, v.Favourite)
	}
}

func TestActivityService_ListScopes(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	newTestActivity(t, f.activities, alice, "Public", false)
	newTestActivity(t, f.activities, alice, "Private", true)
	newTestActivity(t, f.activities, bob, "Bob's", false)

	own, err := f.svc.List(ctx, alice, service.ScopeOwn, store.Page{})
	require.NoError(t, err)
	assert.Len(t, own, 2)

	public, err := f.svc.List(ctx, bob, service.ScopePublic, store.Page{})
	require.NoError(t, err)
	assert.Len(t, public, 2)
	for _, v := range public {
		assert.False(t, v.Activity.Privado)
	}

	empty, err := f.svc.List(ctx, uuid.New(), service.ScopeOwn, store.Page{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = f.svc.List(ctx, alice, "everything", store.Page{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "scope", domain.FieldOf(err))
}

func TestActivityService_ListPropagatesFavoriteErrors(t *testing.T) {
	f := newActivityFixture(t)
	owner := uuid.New()
	newTestActivity(t, f.activities, owner, "A", false)
	lookupErr := errors.New("query failed")
	f.favorites.FavoritedActivityIDsFn = func(context.Context, uuid.UUID, []uuid.UUID) (map[uuid.UUID]bool, error) {
		return nil, lookupErr
	}

	_, err := f.svc.List(context.Background(), owner, service.ScopeOwn, store.Page{})
	assert.ErrorIs(t, err, lookupErr)
}

func TestActivityService_PrivateVisibility(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()
	private := newTestActivity(t, f.activities, owner, "Secret", true)

	_, err := f.svc.Get(ctx, owner, private.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, stranger, private.ID)
	assert.ErrorIs(t, err, store.ErrActivityNotFound)
}

func TestActivityService_Delete(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()
	a := newTestActivity(t, f.activities, owner, "Mine", false)

	assert.ErrorIs(t, f.svc.Delete(ctx, stranger, a.ID), service.ErrNotOwned)
	assert.Contains(t, f.activities.Activities, a.ID)

	require.NoError(t, f.svc.Delete(ctx, owner, a.ID))
	assert.NotContains(t, f.activities.Activities, a.ID)

	assert.ErrorIs(t, f.svc.Delete(ctx, owner, a.ID), store.ErrActivityNotFound)
}
