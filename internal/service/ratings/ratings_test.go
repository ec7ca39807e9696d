package ratings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uppi/backend/internal/domain/notification"
	"github.com/uppi/backend/internal/domain/rating"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/pkg/logger"
)

type fakeRatingRepo struct {
	ratings []*rating.Rating
}

func (f *fakeRatingRepo) Create(_ context.Context, r *rating.Rating) error {
	for _, existing := range f.ratings {
		if existing.RideID == r.RideID && existing.ReviewerID == r.ReviewerID {
			return rating.ErrAlreadyRated
		}
	}
	f.ratings = append(f.ratings, r)
	return nil
}

func (f *fakeRatingRepo) GetByRideAndReviewer(_ context.Context, rideID, reviewerID uuid.UUID) (*rating.Rating, error) {
	for _, r := range f.ratings {
		if r.RideID == rideID && r.ReviewerID == reviewerID {
			return r, nil
		}
	}
	return nil, rating.ErrRatingNotFound
}

func (f *fakeRatingRepo) ListByReviewed(_ context.Context, reviewedID uuid.UUID, _ int) ([]*rating.Rating, error) {
	var out []*rating.Rating
	for _, r := range f.ratings {
		if r.ReviewedID == reviewedID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeRides struct {
	rides map[uuid.UUID]*ride.Ride
}

func (f *fakeRides) GetRide(_ context.Context, id uuid.UUID) (*ride.Ride, error) {
	r, ok := f.rides[id]
	if !ok {
		return nil, ride.ErrRideNotFound
	}
	return r, nil
}

type noopNotifier struct{ count int }

func (n *noopNotifier) Notify(_ context.Context, _ uuid.UUID, _, _ string, _ notification.Type, _ *uuid.UUID) {
	n.count++
}

func newRatingFixture(t *testing.T, status ride.Status) (*Service, *fakeRatingRepo, *ride.Ride, *noopNotifier) {
	t.Helper()

	log, err := logger.New(logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)

	driver := uuid.New()
	completedAt := time.Now()
	r := &ride.Ride{
		ID:          uuid.New(),
		PassengerID: uuid.New(),
		DriverID:    &driver,
		Status:      status,
		CompletedAt: &completedAt,
	}

	repo := &fakeRatingRepo{}
	notifier := &noopNotifier{}
	svc := NewService(repo, &fakeRides{rides: map[uuid.UUID]*ride.Ride{r.ID: r}}, notifier, log)
	return svc, repo, r, notifier
}

// TestSubmit_DerivesReviewed tests the reviewed side comes from the ride
func TestSubmit_DerivesReviewed(t *testing.T) {
	svc, repo, r, notifier := newRatingFixture(t, ride.StatusCompleted)

	rt, err := svc.Submit(context.Background(), r.PassengerID, SubmitInput{
		RideID:  r.ID,
		Score:   5,
		Comment: "great trip",
		Tags:    []string{"polite", "clean_car"},
	})
	require.NoError(t, err)

	assert.Equal(t, r.PassengerID, rt.ReviewerID)
	assert.Equal(t, *r.DriverID, rt.ReviewedID)
	assert.Equal(t, 5, rt.Score)
	assert.Len(t, repo.ratings, 1)
	assert.Equal(t, 1, notifier.count)

	// driver rates back independently
	back, err := svc.Submit(context.Background(), *r.DriverID, SubmitInput{RideID: r.ID, Score: 4})
	require.NoError(t, err)
	assert.Equal(t, r.PassengerID, back.ReviewedID)
	assert.Len(t, repo.ratings, 2)
}

// TestSubmit_Guards tests score, party and status guards
func TestSubmit_Guards(t *testing.T) {
	svc, _, r, _ := newRatingFixture(t, ride.StatusCompleted)

	_, err := svc.Submit(context.Background(), r.PassengerID, SubmitInput{RideID: r.ID, Score: 0})
	assert.ErrorIs(t, err, rating.ErrInvalidScore)

	_, err = svc.Submit(context.Background(), r.PassengerID, SubmitInput{RideID: r.ID, Score: 6})
	assert.ErrorIs(t, err, rating.ErrInvalidScore)

	_, err = svc.Submit(context.Background(), uuid.New(), SubmitInput{RideID: r.ID, Score: 5})
	assert.ErrorIs(t, err, ErrNotAParty)

	_, err = svc.Submit(context.Background(), r.PassengerID, SubmitInput{RideID: uuid.New(), Score: 5})
	assert.ErrorIs(t, err, ride.ErrRideNotFound)
}

// TestSubmit_NotCompleted tests rating an unfinished ride fails
func TestSubmit_NotCompleted(t *testing.T) {
	for _, status := range []ride.Status{ride.StatusPending, ride.StatusNegotiating, ride.StatusAccepted, ride.StatusInProgress, ride.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			svc, _, r, _ := newRatingFixture(t, status)
			_, err := svc.Submit(context.Background(), r.PassengerID, SubmitInput{RideID: r.ID, Score: 5})
			assert.ErrorIs(t, err, ErrRideNotCompleted)
		})
	}
}

// TestSubmit_OncePerReviewer tests the single-rating rule
func TestSubmit_OncePerReviewer(t *testing.T) {
	svc, _, r, _ := newRatingFixture(t, ride.StatusCompleted)

	_, err := svc.Submit(context.Background(), r.PassengerID, SubmitInput{RideID: r.ID, Score: 5})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), r.PassengerID, SubmitInput{RideID: r.ID, Score: 3})
	assert.ErrorIs(t, err, rating.ErrAlreadyRated)
}

// TestGetForRide tests reviewer-scoped lookup
func TestGetForRide(t *testing.T) {
	svc, _, r, _ := newRatingFixture(t, ride.StatusCompleted)

	_, err := svc.GetForRide(context.Background(), r.ID, r.PassengerID)
	assert.ErrorIs(t, err, rating.ErrRatingNotFound)

	_, err = svc.Submit(context.Background(), r.PassengerID, SubmitInput{RideID: r.ID, Score: 4})
	require.NoError(t, err)

	got, err := svc.GetForRide(context.Background(), r.ID, r.PassengerID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Score)
}
