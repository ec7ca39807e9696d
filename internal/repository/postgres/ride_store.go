package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/offer"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/internal/domain/wallet"
	"github.com/uppi/backend/internal/service/negotiation"
)

// NegotiationStore backs the negotiation coordinator with rides, offers and
// the transactional accept/complete paths.
type NegotiationStore struct {
	db *sql.DB
}

// NewNegotiationStore creates a new NegotiationStore
func NewNegotiationStore(db *sql.DB) *NegotiationStore {
	return &NegotiationStore{db: db}
}

const rideColumns = `id, passenger_id, driver_id, status,
	pickup_lat, pickup_lng, pickup_address,
	dropoff_lat, dropoff_lng, dropoff_address,
	distance_km, estimated_duration_minutes,
	passenger_price_offer, final_price, payment_method,
	scheduled_time, started_at, completed_at, cancelled_at,
	cancellation_reason, notes, created_at, updated_at`

// CreateRide inserts a new ride row
func (s *NegotiationStore) CreateRide(ctx context.Context, r *ride.Ride) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rides (
			id, passenger_id, status,
			pickup_lat, pickup_lng, pickup_address,
			dropoff_lat, dropoff_lng, dropoff_address,
			distance_km, estimated_duration_minutes,
			passenger_price_offer, payment_method,
			scheduled_time, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, r.ID, r.PassengerID, r.Status,
		r.PickupLat, r.PickupLng, r.PickupAddress,
		r.DropoffLat, r.DropoffLng, r.DropoffAddress,
		r.DistanceKM, r.EstimatedDurationMinutes,
		r.PassengerPriceOffer, nullPaymentMethod(r.PaymentMethod),
		r.ScheduledTime, r.Notes, r.CreatedAt, r.UpdatedAt)
	return err
}

// GetRide retrieves a ride by ID
func (s *NegotiationStore) GetRide(ctx context.Context, id uuid.UUID) (*ride.Ride, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, id)
	return scanRide(row)
}

// ListRidesByPassenger lists a passenger's rides, newest first
func (s *NegotiationStore) ListRidesByPassenger(ctx context.Context, passengerID uuid.UUID, status ride.Status, limit int) ([]*ride.Ride, error) {
	return s.listRides(ctx, `passenger_id = $1`, passengerID, status, limit)
}

// ListRidesByDriver lists rides assigned to a driver, newest first
func (s *NegotiationStore) ListRidesByDriver(ctx context.Context, driverID uuid.UUID, status ride.Status, limit int) ([]*ride.Ride, error) {
	return s.listRides(ctx, `driver_id = $1`, driverID, status, limit)
}

func (s *NegotiationStore) listRides(ctx context.Context, where string, party uuid.UUID, status ride.Status, limit int) ([]*ride.Ride, error) {
	if limit <= 0 {
		limit = 50
	}
	args := []interface{}{party}
	q := `SELECT ` + rideColumns + ` FROM rides WHERE ` + where
	if status != "" {
		args = append(args, status)
		q += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	args = append(args, limit)
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRides(rows)
}

// ListOpenRides lists rides still accepting offers, oldest first so drivers
// see long-waiting passengers on top.
func (s *NegotiationStore) ListOpenRides(ctx context.Context, limit int) ([]*ride.Ride, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+rideColumns+` FROM rides
		WHERE status IN ('pending', 'negotiating')
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRides(rows)
}

// TransitionRide compare-and-swaps the ride status, applying the patch.
// RowsAffected distinguishes a won CAS from a lost one.
func (s *NegotiationStore) TransitionRide(ctx context.Context, id uuid.UUID, from []ride.Status, to ride.Status, patch ride.Patch) (bool, error) {
	set := []string{"status = $1", "updated_at = NOW()"}
	args := []interface{}{to}

	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.DriverID != nil {
		add("driver_id", *patch.DriverID)
	}
	if patch.FinalPrice != nil {
		add("final_price", *patch.FinalPrice)
	}
	if patch.StartedAt != nil {
		add("started_at", *patch.StartedAt)
	}
	if patch.CompletedAt != nil {
		add("completed_at", *patch.CompletedAt)
	}
	if patch.CancelledAt != nil {
		add("cancelled_at", *patch.CancelledAt)
		add("cancellation_reason", patch.CancellationReason)
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE rides SET %s WHERE id = $%d AND status IN (%s)`,
		strings.Join(set, ", "), len(args), statusPlaceholders(from, &args))

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// CreateOffer inserts a new price offer
func (s *NegotiationStore) CreateOffer(ctx context.Context, o *offer.PriceOffer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO price_offers (id, ride_id, driver_id, offered_price, message, status, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, o.ID, o.RideID, o.DriverID, o.OfferedPrice, o.Message, o.Status, o.ExpiresAt, o.CreatedAt, o.UpdatedAt)
	return err
}

const offerColumns = `id, ride_id, driver_id, offered_price, COALESCE(message, ''), status, expires_at, created_at, updated_at`

// GetOffer retrieves an offer by ID
func (s *NegotiationStore) GetOffer(ctx context.Context, id uuid.UUID) (*offer.PriceOffer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM price_offers WHERE id = $1`, id)
	o, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, offer.ErrOfferNotFound
	}
	return o, err
}

// ListOffersByRide lists all offers on a ride, cheapest first
func (s *NegotiationStore) ListOffersByRide(ctx context.Context, rideID uuid.UUID) ([]*offer.PriceOffer, error) {
	return s.listOffers(ctx, `ride_id = $1 ORDER BY offered_price ASC`, rideID)
}

// ListPendingOffersByRide lists a ride's pending offers, cheapest first
func (s *NegotiationStore) ListPendingOffersByRide(ctx context.Context, rideID uuid.UUID) ([]*offer.PriceOffer, error) {
	return s.listOffers(ctx, `ride_id = $1 AND status = 'pending' ORDER BY offered_price ASC`, rideID)
}

func (s *NegotiationStore) listOffers(ctx context.Context, tail string, rideID uuid.UUID) ([]*offer.PriceOffer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+offerColumns+` FROM price_offers WHERE `+tail, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*offer.PriceOffer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// AcceptOffer performs the atomic accept inside one transaction: the ride CAS
// out of pending/negotiating serializes concurrent accepts, then the winning
// offer is marked accepted and siblings rejected. Any guard failure rolls the
// whole operation back.
func (s *NegotiationStore) AcceptOffer(ctx context.Context, rideID, offerID, driverID uuid.UUID, price float64, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE rides
		SET status = 'accepted', driver_id = $2, final_price = $3, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'negotiating')
	`, rideID, driverID, price)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return negotiation.ErrRideAlreadyAccepted
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE price_offers
		SET status = 'accepted', updated_at = NOW()
		WHERE id = $1 AND ride_id = $2 AND status = 'pending' AND expires_at > $3
	`, offerID, rideID, now)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		// distinguish an expired offer from one already resolved
		var status string
		var expiresAt time.Time
		qerr := tx.QueryRowContext(ctx,
			`SELECT status, expires_at FROM price_offers WHERE id = $1 AND ride_id = $2`,
			offerID, rideID).Scan(&status, &expiresAt)
		if qerr == sql.ErrNoRows {
			return offer.ErrOfferNotFound
		}
		if qerr != nil {
			return qerr
		}
		if status == string(offer.StatusPending) && !expiresAt.After(now) {
			return offer.ErrOfferExpired
		}
		return offer.ErrNotPending
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE price_offers
		SET status = 'rejected', updated_at = NOW()
		WHERE ride_id = $1 AND id <> $2 AND status = 'pending'
	`, rideID, offerID); err != nil {
		return err
	}

	return tx.Commit()
}

// CompleteRide moves an in-progress ride to completed and settles the wallet
// ledger in the same transaction.
func (s *NegotiationStore) CompleteRide(ctx context.Context, rideID uuid.UUID, completedAt time.Time, entries []*wallet.Transaction) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var passengerID uuid.UUID
	var driverID uuid.NullUUID
	err = tx.QueryRowContext(ctx, `
		UPDATE rides
		SET status = 'completed', completed_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'in_progress'
		RETURNING passenger_id, driver_id
	`, rideID, completedAt).Scan(&passengerID, &driverID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wallet_transactions (id, user_id, ride_id, amount, type, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.ID, e.UserID, e.RideID, e.Amount, e.Type, e.Description, e.CreatedAt); err != nil {
			return false, err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE profiles SET total_rides = total_rides + 1, updated_at = NOW()
		WHERE id = $1 OR id = $2
	`, passengerID, driverID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// ExpireOffers sweeps pending offers past the cutoff into expired
func (s *NegotiationStore) ExpireOffers(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE price_offers
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'pending' AND expires_at <= $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRide(row scanner) (*ride.Ride, error) {
	var r ride.Ride
	var driverID uuid.NullUUID
	var distanceKM, priceOffer, finalPrice sql.NullFloat64
	var duration sql.NullInt64
	var paymentMethod, cancelReason, notes sql.NullString
	var scheduled, started, completed, cancelled sql.NullTime

	err := row.Scan(
		&r.ID, &r.PassengerID, &driverID, &r.Status,
		&r.PickupLat, &r.PickupLng, &r.PickupAddress,
		&r.DropoffLat, &r.DropoffLng, &r.DropoffAddress,
		&distanceKM, &duration,
		&priceOffer, &finalPrice, &paymentMethod,
		&scheduled, &started, &completed, &cancelled,
		&cancelReason, &notes, &r.CreatedAt, &r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ride.ErrRideNotFound
	}
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		id := driverID.UUID
		r.DriverID = &id
	}
	r.DistanceKM = nullFloatPtr(distanceKM)
	r.PassengerPriceOffer = nullFloatPtr(priceOffer)
	r.FinalPrice = nullFloatPtr(finalPrice)
	if duration.Valid {
		d := int(duration.Int64)
		r.EstimatedDurationMinutes = &d
	}
	if paymentMethod.Valid {
		r.PaymentMethod = ride.PaymentMethod(paymentMethod.String)
	}
	r.ScheduledTime = nullTimePtr(scheduled)
	r.StartedAt = nullTimePtr(started)
	r.CompletedAt = nullTimePtr(completed)
	r.CancelledAt = nullTimePtr(cancelled)
	r.CancellationReason = cancelReason.String
	r.Notes = notes.String
	return &r, nil
}

func collectRides(rows *sql.Rows) ([]*ride.Ride, error) {
	var rides []*ride.Ride
	for rows.Next() {
		r, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, r)
	}
	return rides, rows.Err()
}

func scanOffer(row scanner) (*offer.PriceOffer, error) {
	var o offer.PriceOffer
	err := row.Scan(&o.ID, &o.RideID, &o.DriverID, &o.OfferedPrice, &o.Message, &o.Status, &o.ExpiresAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func statusPlaceholders(statuses []ride.Status, args *[]interface{}) string {
	parts := make([]string, 0, len(statuses))
	for _, st := range statuses {
		*args = append(*args, st)
		parts = append(parts, fmt.Sprintf("$%d", len(*args)))
	}
	return strings.Join(parts, ", ")
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullPaymentMethod(m ride.PaymentMethod) interface{} {
	if m == "" {
		return nil
	}
	return string(m)
}
