package rating

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultScore is the aggregate shown for users with no ratings yet.
const DefaultScore = 5.00

// Rating is one party's review of the other for a completed ride
type Rating struct {
	ID         uuid.UUID `json:"id"`
	RideID     uuid.UUID `json:"ride_id"`
	ReviewerID uuid.UUID `json:"reviewer_id"`
	ReviewedID uuid.UUID `json:"reviewed_id"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository interface
type Repository interface {
	// Create inserts the rating and recomputes the reviewed user's aggregate
	// in the same transaction.
	Create(ctx context.Context, r *Rating) error
	GetByRideAndReviewer(ctx context.Context, rideID, reviewerID uuid.UUID) (*Rating, error)
	ListByReviewed(ctx context.Context, reviewedID uuid.UUID, limit int) ([]*Rating, error)
}

// Errors
var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrAlreadyRated   = errors.New("ride already rated by this reviewer")
	ErrInvalidScore   = errors.New("score must be between 1 and 5")
)

// IsValidScore reports whether the score is in the 1-5 range.
func IsValidScore(score int) bool {
	return score >= 1 && score <= 5
}

// Aggregate computes a user's displayed rating from raw scores: arithmetic
// mean floored at DefaultScore when empty, rounded to two decimals.
func Aggregate(scores []int) float64 {
	if len(scores) == 0 {
		return DefaultScore
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	mean := float64(sum) / float64(len(scores))
	return math.Round(mean*100) / 100
}
