package negotiation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/offer"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/internal/domain/wallet"
)

// Store is the persistence contract the coordinator runs against. The
// Postgres implementation backs AcceptOffer and CompleteRide with a single
// transaction; any other implementation must provide the same all-or-nothing
// semantics.
type Store interface {
	CreateRide(ctx context.Context, r *ride.Ride) error
	GetRide(ctx context.Context, id uuid.UUID) (*ride.Ride, error)
	ListRidesByPassenger(ctx context.Context, passengerID uuid.UUID, status ride.Status, limit int) ([]*ride.Ride, error)
	ListRidesByDriver(ctx context.Context, driverID uuid.UUID, status ride.Status, limit int) ([]*ride.Ride, error)
	ListOpenRides(ctx context.Context, limit int) ([]*ride.Ride, error)

	// TransitionRide compare-and-swaps the ride status; false means the
	// persisted status was not in from.
	TransitionRide(ctx context.Context, id uuid.UUID, from []ride.Status, to ride.Status, patch ride.Patch) (bool, error)

	CreateOffer(ctx context.Context, o *offer.PriceOffer) error
	GetOffer(ctx context.Context, id uuid.UUID) (*offer.PriceOffer, error)
	ListOffersByRide(ctx context.Context, rideID uuid.UUID) ([]*offer.PriceOffer, error)
	ListPendingOffersByRide(ctx context.Context, rideID uuid.UUID) ([]*offer.PriceOffer, error)

	// AcceptOffer atomically accepts one offer: the ride leaves
	// pending/negotiating into accepted with driver_id and final_price set,
	// the offer becomes accepted, and all sibling pending offers become
	// rejected. All four writes commit together or not at all. Returns
	// ErrRideAlreadyAccepted when the ride CAS finds the ride no longer
	// open, offer.ErrNotPending or offer.ErrOfferExpired when the offer
	// guard fails.
	AcceptOffer(ctx context.Context, rideID, offerID, driverID uuid.UUID, price float64, now time.Time) error

	// CompleteRide compare-and-swaps in_progress into completed, writes the
	// settlement ledger entries and bumps both parties' ride counters in the
	// same transaction. False means the ride was not in_progress.
	CompleteRide(ctx context.Context, rideID uuid.UUID, completedAt time.Time, entries []*wallet.Transaction) (bool, error)

	// ExpireOffers sweeps pending offers whose expiry passed the cutoff.
	ExpireOffers(ctx context.Context, cutoff time.Time) (int64, error)
}
