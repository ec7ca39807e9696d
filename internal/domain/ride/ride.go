package ride

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents ride lifecycle status
type Status string

const (
	StatusPending     Status = "pending"
	StatusNegotiating Status = "negotiating"
	StatusAccepted    Status = "accepted"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// PaymentMethod is how the passenger intends to pay
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentWallet     PaymentMethod = "wallet"
)

// Ride represents a passenger's transportation request
type Ride struct {
	ID                       uuid.UUID     `json:"id"`
	PassengerID              uuid.UUID     `json:"passenger_id"`
	DriverID                 *uuid.UUID    `json:"driver_id,omitempty"`
	Status                   Status        `json:"status"`
	PickupLat                float64       `json:"pickup_lat"`
	PickupLng                float64       `json:"pickup_lng"`
	PickupAddress            string        `json:"pickup_address"`
	DropoffLat               float64       `json:"dropoff_lat"`
	DropoffLng               float64       `json:"dropoff_lng"`
	DropoffAddress           string        `json:"dropoff_address"`
	DistanceKM               *float64      `json:"distance_km,omitempty"`
	EstimatedDurationMinutes *int          `json:"estimated_duration_minutes,omitempty"`
	PassengerPriceOffer      *float64      `json:"passenger_price_offer,omitempty"`
	FinalPrice               *float64      `json:"final_price,omitempty"`
	PaymentMethod            PaymentMethod `json:"payment_method,omitempty"`
	ScheduledTime            *time.Time    `json:"scheduled_time,omitempty"`
	StartedAt                *time.Time    `json:"started_at,omitempty"`
	CompletedAt              *time.Time    `json:"completed_at,omitempty"`
	CancelledAt              *time.Time    `json:"cancelled_at,omitempty"`
	CancellationReason       string        `json:"cancellation_reason,omitempty"`
	Notes                    string        `json:"notes,omitempty"`
	CreatedAt                time.Time     `json:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

// Patch carries the columns a status transition sets alongside the new status.
type Patch struct {
	DriverID           *uuid.UUID
	FinalPrice         *float64
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

// Repository interface
type Repository interface {
	Create(ctx context.Context, r *Ride) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ride, error)
	ListByPassenger(ctx context.Context, passengerID uuid.UUID, status Status, limit int) ([]*Ride, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID, status Status, limit int) ([]*Ride, error)
	ListOpen(ctx context.Context, limit int) ([]*Ride, error)
	// Transition atomically moves the ride from one of the given statuses to
	// the target status, applying the patch. Returns false when the persisted
	// status was not in from, i.e. the caller lost a race.
	Transition(ctx context.Context, id uuid.UUID, from []Status, to Status, patch Patch) (bool, error)
}

// Errors
var (
	ErrRideNotFound      = errors.New("ride not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// openStatuses are the states in which a ride still accepts offers.
var openStatuses = []Status{StatusPending, StatusNegotiating}

// OpenStatuses returns the states in which offers may be submitted or accepted.
func OpenStatuses() []Status {
	out := make([]Status, len(openStatuses))
	copy(out, openStatuses)
	return out
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValid validates the status value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusNegotiating, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsValid validates the payment method value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentWallet:
		return true
	}
	return false
}

// IsOpen reports whether the ride still accepts offers.
func (r *Ride) IsOpen() bool {
	return r.Status == StatusPending || r.Status == StatusNegotiating
}

// CanAccept checks if an offer can be accepted for this ride
func (r *Ride) CanAccept() bool {
	return r.IsOpen()
}

// CanStart checks if the assigned driver can start the ride
func (r *Ride) CanStart() bool {
	return r.Status == StatusAccepted
}

// CanComplete checks if the ride can be completed
func (r *Ride) CanComplete() bool {
	return r.Status == StatusInProgress
}

// CanCancel checks if the ride can still be cancelled
func (r *Ride) CanCancel() bool {
	switch r.Status {
	case StatusPending, StatusNegotiating, StatusAccepted:
		return true
	}
	return false
}

// IsParty reports whether the user is the passenger or assigned driver.
func (r *Ride) IsParty(userID uuid.UUID) bool {
	if r.PassengerID == userID {
		return true
	}
	return r.DriverID != nil && *r.DriverID == userID
}

// Counterpart returns the other party of the ride for the given user.
func (r *Ride) Counterpart(userID uuid.UUID) (uuid.UUID, bool) {
	if r.PassengerID == userID {
		if r.DriverID == nil {
			return uuid.Nil, false
		}
		return *r.DriverID, true
	}
	if r.DriverID != nil && *r.DriverID == userID {
		return r.PassengerID, true
	}
	return uuid.Nil, false
}
