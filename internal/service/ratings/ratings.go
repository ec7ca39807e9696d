package ratings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/notification"
	"github.com/uppi/backend/internal/domain/rating"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/pkg/logger"
)

// Rides is the read-side the rating guards run against
type Rides interface {
	GetRide(ctx context.Context, id uuid.UUID) (*ride.Ride, error)
}

// Notifier mirrors the negotiation notifier; failures stay inside it
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, typ notification.Type, rideID *uuid.UUID)
}

// Service handles post-ride ratings
type Service struct {
	ratings  rating.Repository
	rides    Rides
	notifier Notifier
	logger   *logger.Logger
}

var (
	ErrRideNotCompleted = errors.New("ride is not completed")
	ErrNotAParty        = errors.New("caller is not a party to the ride")
)

// NewService creates a new ratings service
func NewService(ratings rating.Repository, rides Rides, notifier Notifier, log *logger.Logger) *Service {
	return &Service{ratings: ratings, rides: rides, notifier: notifier, logger: log}
}

// SubmitInput carries a new rating
type SubmitInput struct {
	RideID  uuid.UUID
	Score   int
	Comment string
	Tags    []string
}

// Submit records the reviewer's rating of their counterpart on a completed
// ride. Each party may rate once; the reviewed side is always derived from
// the ride, never taken from the request.
func (s *Service) Submit(ctx context.Context, reviewerID uuid.UUID, in SubmitInput) (*rating.Rating, error) {
	if !rating.IsValidScore(in.Score) {
		return nil, fmt.Errorf("%w: got %d", rating.ErrInvalidScore, in.Score)
	}

	r, err := s.rides.GetRide(ctx, in.RideID)
	if err != nil {
		return nil, err
	}
	if !r.IsParty(reviewerID) {
		return nil, ErrNotAParty
	}
	if r.Status != ride.StatusCompleted {
		return nil, fmt.Errorf("%w: status %s", ErrRideNotCompleted, r.Status)
	}

	reviewedID, ok := r.Counterpart(reviewerID)
	if !ok {
		return nil, ErrNotAParty
	}

	rt := &rating.Rating{
		ID:         uuid.New(),
		RideID:     in.RideID,
		ReviewerID: reviewerID,
		ReviewedID: reviewedID,
		Score:      in.Score,
		Comment:    in.Comment,
		Tags:       in.Tags,
		CreatedAt:  time.Now(),
	}
	if err := s.ratings.Create(ctx, rt); err != nil {
		return nil, err
	}

	s.logger.Info("Rating submitted",
		logger.String("ride_id", in.RideID.String()),
		logger.String("reviewer_id", reviewerID.String()),
		logger.Int("score", in.Score),
	)

	s.notifier.Notify(ctx, reviewedID, "New rating received",
		fmt.Sprintf("You received a %d-star rating", in.Score),
		notification.TypeRide, &in.RideID)

	return rt, nil
}

// ListReceived lists ratings a user has received, newest first
func (s *Service) ListReceived(ctx context.Context, userID uuid.UUID, limit int) ([]*rating.Rating, error) {
	return s.ratings.ListByReviewed(ctx, userID, limit)
}

// GetForRide returns the rating the reviewer left for a ride, if any
func (s *Service) GetForRide(ctx context.Context, rideID, reviewerID uuid.UUID) (*rating.Rating, error) {
	return s.ratings.GetByRideAndReviewer(ctx, rideID, reviewerID)
}
