package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks an activity as a user's favorite. Only existence matters.
type Favorite struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user"`
	ActivityID uuid.UUID `json:"activity"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewFavorite creates a favorite link between userID and activityID.
func NewFavorite(userID, activityID uuid.UUID) (*Favorite, error) {
	if userID == uuid.Nil {
		return nil, MissingField("user")
	}
	if activityID == uuid.Nil {
		return nil, MissingField("activity")
	}
	return &Favorite{
		ID:         uuid.New(),
		UserID:     userID,
		ActivityID: activityID,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a user's score for an activity. A user has at most one
// rating per activity; rating again replaces the score.
type Rating struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user"`
	ActivityID uuid.UUID `json:"activity"`
	Puntuacion int       `json:"puntuacion"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRating creates a rating after checking the score bounds.
func NewRating(userID, activityID uuid.UUID, score int) (*Rating, error) {
	if userID == uuid.Nil {
		return nil, MissingField("user")
	}
	if activityID == uuid.Nil {
		return nil, MissingField("activity")
	}
	if score < MinRating || score > MaxRating {
		return nil, NewValidationError("puntuacion", "must be between 1 and 5", nil)
	}
	return &Rating{
		ID:         uuid.New(),
		UserID:     userID,
		ActivityID: activityID,
		Puntuacion: score,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
