package negotiation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/notification"
	"github.com/uppi/backend/internal/domain/offer"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/internal/domain/user"
	"github.com/uppi/backend/internal/domain/wallet"
	"github.com/uppi/backend/pkg/logger"
)

// Coordinator owns the ride lifecycle from creation through offer
// negotiation, execution and completion. It is the only component allowed to
// transition rides and resolve offers.
type Coordinator struct {
	store    Store
	profiles Profiles
	notifier Notifier
	events   Events
	geo      RouteEstimator
	logger   *logger.Logger
	config   Config
	now      func() time.Time
}

// Config holds coordinator tunables
type Config struct {
	OfferTTL time.Duration // pending offer lifetime, default 24h
}

// Profiles is the read-side identity lookup the coordinator authorizes against.
type Profiles interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.Profile, error)
	GetDriverProfile(ctx context.Context, id uuid.UUID) (*user.DriverProfile, error)
}

// Notifier delivers fire-and-forget user notifications. Failures must be
// swallowed by the implementation; a missed notification is recoverable by
// polling.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, typ notification.Type, rideID *uuid.UUID)
}

// Events publishes negotiation state changes to subscribed clients,
// best-effort and at-most-once.
type Events interface {
	RideStatusChanged(r *ride.Ride)
	OfferReceived(o *offer.PriceOffer)
}

// RouteEstimator supplies advisory distance/duration estimates.
type RouteEstimator interface {
	EstimateRoute(pickupLat, pickupLng, dropoffLat, dropoffLng float64) (distanceKM float64, durationMinutes int)
}

// Errors
var (
	ErrRideNotOpen         = errors.New("ride is not open for offers")
	ErrRideAlreadyAccepted = errors.New("ride has already been accepted")
	ErrNotADriver          = errors.New("caller has no driver profile")
	ErrNotAParty           = errors.New("caller is not a party to the ride")
	ErrNotPassenger        = errors.New("caller is not the ride passenger")
	ErrNotAssignedDriver   = errors.New("caller is not the assigned driver")
	ErrOfferMismatch       = errors.New("offer does not belong to the ride")
	ErrOwnRide             = errors.New("drivers cannot bid on their own ride")
	ErrInvalidPrice        = errors.New("price must be positive")
	ErrInvalidPayment      = errors.New("invalid payment method")
)

const defaultOfferTTL = 24 * time.Hour

// NewCoordinator creates a new negotiation coordinator
func NewCoordinator(store Store, profiles Profiles, notifier Notifier, events Events, geo RouteEstimator, log *logger.Logger, config Config) *Coordinator {
	if config.OfferTTL <= 0 {
		config.OfferTTL = defaultOfferTTL
	}
	return &Coordinator{
		store:    store,
		profiles: profiles,
		notifier: notifier,
		events:   events,
		geo:      geo,
		logger:   log,
		config:   config,
		now:      time.Now,
	}
}

// CreateRideInput carries a new ride request
type CreateRideInput struct {
	PassengerID              uuid.UUID
	PickupLat                float64
	PickupLng                float64
	PickupAddress            string
	DropoffLat               float64
	DropoffLng               float64
	DropoffAddress           string
	PassengerPriceOffer      *float64
	PaymentMethod            ride.PaymentMethod
	DistanceKM               *float64
	EstimatedDurationMinutes *int
	ScheduledTime            *time.Time
	Notes                    string
}

// CreateRide persists a new pending ride and announces it to drivers.
func (c *Coordinator) CreateRide(ctx context.Context, in CreateRideInput) (*ride.Ride, error) {
	if in.PassengerPriceOffer != nil && *in.PassengerPriceOffer <= 0 {
		return nil, ErrInvalidPrice
	}
	if in.PaymentMethod != "" && !in.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, in.PaymentMethod)
	}

	now := c.now()
	r := &ride.Ride{
		ID:                  uuid.New(),
		PassengerID:         in.PassengerID,
		Status:              ride.StatusPending,
		PickupLat:           in.PickupLat,
		PickupLng:           in.PickupLng,
		PickupAddress:       in.PickupAddress,
		DropoffLat:          in.DropoffLat,
		DropoffLng:          in.DropoffLng,
		DropoffAddress:      in.DropoffAddress,
		PassengerPriceOffer: in.PassengerPriceOffer,
		PaymentMethod:       in.PaymentMethod,
		ScheduledTime:       in.ScheduledTime,
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// client-provided estimates win; otherwise fall back to the advisory
	// route estimator
	r.DistanceKM = in.DistanceKM
	r.EstimatedDurationMinutes = in.EstimatedDurationMinutes
	if r.DistanceKM == nil && c.geo != nil {
		dist, mins := c.geo.EstimateRoute(in.PickupLat, in.PickupLng, in.DropoffLat, in.DropoffLng)
		r.DistanceKM = &dist
		r.EstimatedDurationMinutes = &mins
	}

	if err := c.store.CreateRide(ctx, r); err != nil {
		return nil, err
	}

	c.logger.Info("Ride created",
		logger.String("ride_id", r.ID.String()),
		logger.String("passenger_id", r.PassengerID.String()),
	)

	c.publishRide(r)
	return r, nil
}

// GetRide returns the ride when the caller is a party or the ride is still
// open to drivers.
func (c *Coordinator) GetRide(ctx context.Context, rideID, callerID uuid.UUID) (*ride.Ride, error) {
	r, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !r.IsParty(callerID) && !r.IsOpen() {
		return nil, ErrNotAParty
	}
	return r, nil
}

// ListPassengerRides lists the caller's rides, optionally filtered by status.
func (c *Coordinator) ListPassengerRides(ctx context.Context, passengerID uuid.UUID, status ride.Status, limit int) ([]*ride.Ride, error) {
	return c.store.ListRidesByPassenger(ctx, passengerID, status, limit)
}

// ListDriverRides lists rides assigned to the driver.
func (c *Coordinator) ListDriverRides(ctx context.Context, driverID uuid.UUID, status ride.Status, limit int) ([]*ride.Ride, error) {
	return c.store.ListRidesByDriver(ctx, driverID, status, limit)
}

// ListOpenRides lists rides currently accepting offers, for the driver view.
func (c *Coordinator) ListOpenRides(ctx context.Context, callerID uuid.UUID, limit int) ([]*ride.Ride, error) {
	if _, err := c.profiles.GetDriverProfile(ctx, callerID); err != nil {
		if errors.Is(err, user.ErrDriverProfileNotFound) {
			return nil, ErrNotADriver
		}
		return nil, err
	}
	return c.store.ListOpenRides(ctx, limit)
}

// SubmitOfferInput carries a driver's price offer
type SubmitOfferInput struct {
	RideID   uuid.UUID
	DriverID uuid.UUID
	Price    float64
	Message  string
}

// SubmitOffer records a driver's counter-offer against an open ride.
func (c *Coordinator) SubmitOffer(ctx context.Context, in SubmitOfferInput) (*offer.PriceOffer, error) {
	if in.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if _, err := c.profiles.GetDriverProfile(ctx, in.DriverID); err != nil {
		if errors.Is(err, user.ErrDriverProfileNotFound) {
			return nil, ErrNotADriver
		}
		return nil, err
	}

	r, err := c.store.GetRide(ctx, in.RideID)
	if err != nil {
		return nil, err
	}
	if r.PassengerID == in.DriverID {
		return nil, ErrOwnRide
	}
	if !r.IsOpen() {
		return nil, ErrRideNotOpen
	}

	now := c.now()
	o := &offer.PriceOffer{
		ID:           uuid.New(),
		RideID:       r.ID,
		DriverID:     in.DriverID,
		OfferedPrice: in.Price,
		Message:      in.Message,
		Status:       offer.StatusPending,
		ExpiresAt:    now.Add(c.config.OfferTTL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.store.CreateOffer(ctx, o); err != nil {
		return nil, err
	}

	// first offer moves the ride into negotiating; losing this CAS to a
	// concurrent offer or accept is fine, the status is informational
	if r.Status == ride.StatusPending {
		if _, err := c.store.TransitionRide(ctx, r.ID, []ride.Status{ride.StatusPending}, ride.StatusNegotiating, ride.Patch{}); err != nil {
			c.logger.Warn("Failed to mark ride negotiating", logger.Err(err), logger.String("ride_id", r.ID.String()))
		}
	}

	c.logger.Info("Offer submitted",
		logger.String("offer_id", o.ID.String()),
		logger.String("ride_id", r.ID.String()),
		logger.String("driver_id", in.DriverID.String()),
		logger.Float64("price", in.Price),
	)

	c.notifier.Notify(ctx, r.PassengerID, "New offer received",
		fmt.Sprintf("A driver offered %.2f for your ride", in.Price),
		notification.TypeOffer, &r.ID)
	if c.events != nil {
		c.events.OfferReceived(o)
	}
	return o, nil
}

// ListOffers returns a ride's offers to the passenger or to any driver who
// has offered on it.
func (c *Coordinator) ListOffers(ctx context.Context, rideID, callerID uuid.UUID) ([]*offer.PriceOffer, error) {
	r, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	offers, err := c.store.ListOffersByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if r.IsParty(callerID) {
		return offers, nil
	}
	for _, o := range offers {
		if o.DriverID == callerID {
			return offers, nil
		}
	}
	return nil, ErrNotAParty
}

// AcceptOffer atomically accepts one offer on behalf of the passenger: the
// winning offer becomes accepted, every sibling pending offer becomes
// rejected, and the ride transitions to accepted with driver_id and
// final_price set. Concurrent accepts on the same ride are serialized by the
// store; the loser gets ErrRideAlreadyAccepted. Re-accepting the offer that
// already won returns the current ride unchanged.
func (c *Coordinator) AcceptOffer(ctx context.Context, rideID, offerID, callerID uuid.UUID) (*ride.Ride, error) {
	r, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if r.PassengerID != callerID {
		return nil, ErrNotPassenger
	}

	o, err := c.store.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if o.RideID != rideID {
		return nil, ErrOfferMismatch
	}

	now := c.now()
	if replayed := c.acceptedAlready(r, o); replayed != nil {
		return replayed, nil
	}
	if !r.IsOpen() {
		if r.Status == ride.StatusCancelled {
			return nil, ride.ErrInvalidTransition
		}
		return nil, ErrRideAlreadyAccepted
	}
	if o.IsExpired(now) {
		return nil, offer.ErrOfferExpired
	}
	if o.Status != offer.StatusPending {
		return nil, offer.ErrNotPending
	}

	siblings, err := c.store.ListPendingOffersByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if err := c.store.AcceptOffer(ctx, rideID, offerID, o.DriverID, o.OfferedPrice, now); err != nil {
		if errors.Is(err, ErrRideAlreadyAccepted) {
			// lost the race; if the winner was this very offer, treat the
			// retry as idempotent
			if cur, gerr := c.store.GetRide(ctx, rideID); gerr == nil {
				if replayed := c.acceptedAlready(cur, o); replayed != nil {
					return replayed, nil
				}
			}
		}
		return nil, err
	}

	accepted, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Offer accepted",
		logger.String("ride_id", rideID.String()),
		logger.String("offer_id", offerID.String()),
		logger.String("driver_id", o.DriverID.String()),
		logger.Float64("final_price", o.OfferedPrice),
	)

	c.notifier.Notify(ctx, o.DriverID, "Offer accepted",
		fmt.Sprintf("Your offer of %.2f was accepted", o.OfferedPrice),
		notification.TypeOffer, &rideID)
	for _, sib := range siblings {
		if sib.ID == offerID {
			continue
		}
		c.notifier.Notify(ctx, sib.DriverID, "Offer declined",
			"The passenger chose another offer", notification.TypeOffer, &rideID)
	}
	c.publishRide(accepted)
	return accepted, nil
}

// acceptedAlready returns the ride when it already reflects this exact
// accept, for idempotent retries.
func (c *Coordinator) acceptedAlready(r *ride.Ride, o *offer.PriceOffer) *ride.Ride {
	if r.Status != ride.StatusAccepted && r.Status != ride.StatusInProgress && r.Status != ride.StatusCompleted {
		return nil
	}
	if r.DriverID != nil && *r.DriverID == o.DriverID && r.FinalPrice != nil && *r.FinalPrice == o.OfferedPrice {
		return r
	}
	return nil
}

// CancelRide cancels a not-yet-started ride on behalf of either party. The
// guard runs against the persisted status, not the caller's view.
func (c *Coordinator) CancelRide(ctx context.Context, rideID, actorID uuid.UUID, reason string) (*ride.Ride, error) {
	r, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !r.IsParty(actorID) {
		return nil, ErrNotAParty
	}
	if r.Status.IsTerminal() || r.Status == ride.StatusInProgress {
		return nil, ride.ErrInvalidTransition
	}

	now := c.now()
	ok, err := c.store.TransitionRide(ctx, rideID,
		[]ride.Status{ride.StatusPending, ride.StatusNegotiating, ride.StatusAccepted},
		ride.StatusCancelled,
		ride.Patch{CancelledAt: &now, CancellationReason: reason})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ride.ErrInvalidTransition
	}

	cancelled, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Ride cancelled",
		logger.String("ride_id", rideID.String()),
		logger.String("actor_id", actorID.String()),
		logger.String("reason", reason),
	)

	if other, ok := cancelled.Counterpart(actorID); ok {
		c.notifier.Notify(ctx, other, "Ride cancelled",
			"The ride was cancelled by the other party", notification.TypeRide, &rideID)
	}
	c.publishRide(cancelled)
	return cancelled, nil
}

// StartRide moves an accepted ride into in_progress, driver only.
func (c *Coordinator) StartRide(ctx context.Context, rideID, driverID uuid.UUID) (*ride.Ride, error) {
	r, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if r.DriverID == nil || *r.DriverID != driverID {
		return nil, ErrNotAssignedDriver
	}

	now := c.now()
	ok, err := c.store.TransitionRide(ctx, rideID,
		[]ride.Status{ride.StatusAccepted}, ride.StatusInProgress,
		ride.Patch{StartedAt: &now})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ride.ErrInvalidTransition
	}

	started, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Ride started", logger.String("ride_id", rideID.String()))
	c.notifier.Notify(ctx, started.PassengerID, "Ride started",
		"Your driver has started the ride", notification.TypeRide, &rideID)
	c.publishRide(started)
	return started, nil
}

// CompleteRide finishes an in-progress ride, driver only. When the ride is
// paid from the wallet, settlement ledger entries commit with the status
// change.
func (c *Coordinator) CompleteRide(ctx context.Context, rideID, driverID uuid.UUID) (*ride.Ride, error) {
	r, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if r.DriverID == nil || *r.DriverID != driverID {
		return nil, ErrNotAssignedDriver
	}
	if !r.CanComplete() {
		return nil, ride.ErrInvalidTransition
	}

	now := c.now()
	ok, err := c.store.CompleteRide(ctx, rideID, now, c.settlementEntries(r, now))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ride.ErrInvalidTransition
	}

	completed, err := c.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Ride completed",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID.String()),
	)

	c.notifier.Notify(ctx, completed.PassengerID, "Ride completed",
		"Rate your driver to help the community", notification.TypeRide, &rideID)
	c.notifier.Notify(ctx, driverID, "Ride completed",
		"Rate your passenger to help the community", notification.TypeRide, &rideID)
	c.publishRide(completed)
	return completed, nil
}

// settlementEntries builds the wallet ledger entries for a completing ride.
// Only wallet-paid rides settle through the ledger.
func (c *Coordinator) settlementEntries(r *ride.Ride, now time.Time) []*wallet.Transaction {
	if r.PaymentMethod != ride.PaymentWallet || r.FinalPrice == nil || r.DriverID == nil {
		return nil
	}
	price := *r.FinalPrice
	return []*wallet.Transaction{
		{
			ID:          uuid.New(),
			UserID:      r.PassengerID,
			RideID:      &r.ID,
			Amount:      price,
			Type:        wallet.TypeDebit,
			Description: "Ride payment",
			CreatedAt:   now,
		},
		{
			ID:          uuid.New(),
			UserID:      *r.DriverID,
			RideID:      &r.ID,
			Amount:      price,
			Type:        wallet.TypeCredit,
			Description: "Ride earnings",
			CreatedAt:   now,
		},
	}
}

// ExpireStaleOffers sweeps pending offers past their expiry. Safe to re-run;
// accepted and rejected offers are never touched.
func (c *Coordinator) ExpireStaleOffers(ctx context.Context) (int64, error) {
	n, err := c.store.ExpireOffers(ctx, c.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		c.logger.Info("Expired stale offers", logger.Int64("count", n))
	}
	return n, nil
}

// RunExpirySweeper runs the expiry sweep on a ticker until the context is
// cancelled.
func (c *Coordinator) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.ExpireStaleOffers(ctx); err != nil {
				c.logger.Error("Offer expiry sweep failed", logger.Err(err))
			}
		}
	}
}

func (c *Coordinator) publishRide(r *ride.Ride) {
	if c.events != nil {
		c.events.RideStatusChanged(r)
	}
}
