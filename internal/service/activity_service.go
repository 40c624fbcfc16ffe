package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// ActivityScope selects which activities List returns.
type ActivityScope string

// Supported list scopes.
const (
	ScopeOwn    ActivityScope = "own"
	ScopePublic ActivityScope = "public"
)

// ActivityView is an activity as seen by one user. Favourite is computed
// per request and never stored.
type ActivityView struct {
	Activity  *domain.Activity
	Favourite bool
}

// ActivityService manages activities and computes the per-user favourite flag.
type ActivityService interface {
	// Create stores a new activity owned by callerID. A non-nil UserID in
	// input that differs from callerID yields ErrNotOwned.
	Create(ctx context.Context, callerID uuid.UUID, input domain.NewActivity) (*ActivityView, error)

	// Get returns the activity if callerID may see it. Private activities of
	// other users are reported as store.ErrActivityNotFound.
	Get(ctx context.Context, callerID, activityID uuid.UUID) (*ActivityView, error)

	// List returns the caller's own activities or all public ones.
	List(ctx context.Context, callerID uuid.UUID, scope ActivityScope, page store.Page) ([]ActivityView, error)

	// Delete removes an activity owned by callerID.
	Delete(ctx context.Context, callerID, activityID uuid.UUID) error
}

type activityServiceImpl struct {
	activities store.ActivityStore
	favorites  store.FavoriteStore
	logger     *slog.Logger
}

// NewActivityService creates an ActivityService.
func NewActivityService(
	activities store.ActivityStore,
	favorites store.FavoriteStore,
	logger *slog.Logger,
) (ActivityService, error) {
	if activities == nil {
		return nil, domain.NewValidationError("activities", "cannot be nil", domain.ErrValidation)
	}
	if favorites == nil {
		return nil, domain.NewValidationError("favorites", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &activityServiceImpl{
		activities: activities,
		favorites:  favorites,
		logger:     logger.With(slog.String("component", "activity_service")),
	}, nil
}

func (s *activityServiceImpl) Create(
	ctx context.Context,
	callerID uuid.UUID,
	input domain.NewActivity,
) (*ActivityView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.UserID == uuid.Nil {
		input.UserID = callerID
	}
	if input.UserID != callerID {
		log.Warn("attempt to create activity for another user",
			slog.String("caller_id", callerID.String()),
			slog.String("usuario", input.UserID.String()))
		return nil, ErrNotOwned
	}

	activity, err := input.Build()
	if err != nil {
		return nil, err
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	log.Info("activity created",
		slog.String("activity_id", activity.ID.String()),
		slog.String("user_id", callerID.String()))
	return &ActivityView{Activity: activity}, nil
}

func (s *activityServiceImpl) Get(ctx context.Context, callerID, activityID uuid.UUID) (*ActivityView, error) {
	activity, err := visibleActivity(ctx, s.activities, callerID, activityID)
	if err != nil {
		return nil, err
	}
	favourite, err := s.favorites.Exists(ctx, callerID, activityID)
	if err != nil {
		return nil, err
	}
	return &ActivityView{Activity: activity, Favourite: favourite}, nil
}

func (s *activityServiceImpl) List(
	ctx context.Context,
	callerID uuid.UUID,
	scope ActivityScope,
	page store.Page,
) ([]ActivityView, error) {
	var (
		activities []*domain.Activity
		err        error
	)
	switch scope {
	case ScopeOwn, "":
		activities, err = s.activities.ListByUser(ctx, callerID, page)
	case ScopePublic:
		activities, err = s.activities.ListPublic(ctx, page)
	default:
		return nil, domain.NewValidationError("scope", "must be own or public", nil)
	}
	if err != nil {
		return nil, err
	}

	views := make([]ActivityView, len(activities))
	if len(activities) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
	}
	favourites, err := s.favorites.FavoritedActivityIDs(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}

	for i, a := range activities {
		views[i] = ActivityView{Activity: a, Favourite: favourites[a.ID]}
	}
	return views, nil
}

func (s *activityServiceImpl) Delete(ctx context.Context, callerID, activityID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	activity, err := visibleActivity(ctx, s.activities, callerID, activityID)
	if err != nil {
		return err
	}
	if activity.UserID != callerID {
		return ErrNotOwned
	}
	if err := s.activities.Delete(ctx, activityID); err != nil {
		return err
	}

	log.Info("activity deleted",
		slog.String("activity_id", activityID.String()),
		slog.String("user_id", callerID.String()))
	return nil
}

// visibleActivity loads an activity and hides it when callerID may not see it.
func visibleActivity(
	ctx context.Context,
	activities store.ActivityStore,
	callerID, activityID uuid.UUID,
) (*domain.Activity, error) {
	activity, err := activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if !activity.VisibleTo(callerID) {
		return nil, store.ErrActivityNotFound
	}
	return activity, nil
}
