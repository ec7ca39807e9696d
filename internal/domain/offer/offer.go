package offer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents price offer status
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// PriceOffer is a driver's counter-proposal against an open ride
type PriceOffer struct {
	ID           uuid.UUID `json:"id"`
	RideID       uuid.UUID `json:"ride_id"`
	DriverID     uuid.UUID `json:"driver_id"`
	OfferedPrice float64   `json:"offered_price"`
	Message      string    `json:"message,omitempty"`
	Status       Status    `json:"status"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository interface
type Repository interface {
	Create(ctx context.Context, o *PriceOffer) error
	GetByID(ctx context.Context, id uuid.UUID) (*PriceOffer, error)
	ListByRide(ctx context.Context, rideID uuid.UUID) ([]*PriceOffer, error)
	ListPendingByRide(ctx context.Context, rideID uuid.UUID) ([]*PriceOffer, error)
	// ExpirePending moves pending offers whose expiry is before the cutoff to
	// expired, leaving accepted/rejected offers untouched. Returns the number
	// of offers swept.
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}

// Errors
var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrOfferExpired  = errors.New("offer has expired")
	ErrNotPending    = errors.New("offer is not pending")
)

// IsExpired reports whether the offer's expiry has passed at the given time.
func (o *PriceOffer) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// IsAcceptable checks if the offer can still be accepted at the given time
func (o *PriceOffer) IsAcceptable(now time.Time) bool {
	return o.Status == StatusPending && !o.IsExpired(now)
}
