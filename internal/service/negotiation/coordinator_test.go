package negotiation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uppi/backend/internal/domain/notification"
	"github.com/uppi/backend/internal/domain/offer"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/internal/domain/user"
	"github.com/uppi/backend/internal/domain/wallet"
	"github.com/uppi/backend/pkg/logger"
)

// memStore is a mutex-guarded in-memory Store with the same CAS semantics as
// the Postgres implementation, so concurrency properties hold under -race.
type memStore struct {
	mu     sync.Mutex
	rides  map[uuid.UUID]*ride.Ride
	offers map[uuid.UUID]*offer.PriceOffer
	ledger []*wallet.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		rides:  make(map[uuid.UUID]*ride.Ride),
		offers: make(map[uuid.UUID]*offer.PriceOffer),
	}
}

func (s *memStore) CreateRide(_ context.Context, r *ride.Ride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.rides[r.ID] = &cp
	return nil
}

func (s *memStore) GetRide(_ context.Context, id uuid.UUID) (*ride.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rides[id]
	if !ok {
		return nil, ride.ErrRideNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *memStore) ListRidesByPassenger(_ context.Context, passengerID uuid.UUID, status ride.Status, _ int) ([]*ride.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ride.Ride
	for _, r := range s.rides {
		if r.PassengerID == passengerID && (status == "" || r.Status == status) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) ListRidesByDriver(_ context.Context, driverID uuid.UUID, status ride.Status, _ int) ([]*ride.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ride.Ride
	for _, r := range s.rides {
		if r.DriverID != nil && *r.DriverID == driverID && (status == "" || r.Status == status) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) ListOpenRides(_ context.Context, _ int) ([]*ride.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ride.Ride
	for _, r := range s.rides {
		if r.IsOpen() {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) TransitionRide(_ context.Context, id uuid.UUID, from []ride.Status, to ride.Status, patch ride.Patch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rides[id]
	if !ok {
		return false, nil
	}
	if !statusIn(r.Status, from) {
		return false, nil
	}
	r.Status = to
	applyPatch(r, patch)
	return true, nil
}

func (s *memStore) CreateOffer(_ context.Context, o *offer.PriceOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.offers[o.ID] = &cp
	return nil
}

func (s *memStore) GetOffer(_ context.Context, id uuid.UUID) (*offer.PriceOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[id]
	if !ok {
		return nil, offer.ErrOfferNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memStore) ListOffersByRide(_ context.Context, rideID uuid.UUID) ([]*offer.PriceOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*offer.PriceOffer
	for _, o := range s.offers {
		if o.RideID == rideID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) ListPendingOffersByRide(_ context.Context, rideID uuid.UUID) ([]*offer.PriceOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*offer.PriceOffer
	for _, o := range s.offers {
		if o.RideID == rideID && o.Status == offer.StatusPending {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) AcceptOffer(_ context.Context, rideID, offerID, driverID uuid.UUID, price float64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rides[rideID]
	if !ok {
		return ride.ErrRideNotFound
	}
	if !r.IsOpen() {
		return ErrRideAlreadyAccepted
	}

	o, ok := s.offers[offerID]
	if !ok || o.RideID != rideID {
		return offer.ErrOfferNotFound
	}
	if o.Status != offer.StatusPending {
		return offer.ErrNotPending
	}
	if !o.ExpiresAt.After(now) {
		return offer.ErrOfferExpired
	}

	r.Status = ride.StatusAccepted
	r.DriverID = &driverID
	r.FinalPrice = &price
	o.Status = offer.StatusAccepted
	for _, sib := range s.offers {
		if sib.RideID == rideID && sib.ID != offerID && sib.Status == offer.StatusPending {
			sib.Status = offer.StatusRejected
		}
	}
	return nil
}

func (s *memStore) CompleteRide(_ context.Context, rideID uuid.UUID, completedAt time.Time, entries []*wallet.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rides[rideID]
	if !ok || r.Status != ride.StatusInProgress {
		return false, nil
	}
	r.Status = ride.StatusCompleted
	r.CompletedAt = &completedAt
	s.ledger = append(s.ledger, entries...)
	return true, nil
}

func (s *memStore) ExpireOffers(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, o := range s.offers {
		if o.Status == offer.StatusPending && !o.ExpiresAt.After(cutoff) {
			o.Status = offer.StatusExpired
			n++
		}
	}
	return n, nil
}

func statusIn(s ride.Status, set []ride.Status) bool {
	for _, st := range set {
		if s == st {
			return true
		}
	}
	return false
}

func applyPatch(r *ride.Ride, patch ride.Patch) {
	if patch.DriverID != nil {
		r.DriverID = patch.DriverID
	}
	if patch.FinalPrice != nil {
		r.FinalPrice = patch.FinalPrice
	}
	if patch.StartedAt != nil {
		r.StartedAt = patch.StartedAt
	}
	if patch.CompletedAt != nil {
		r.CompletedAt = patch.CompletedAt
	}
	if patch.CancelledAt != nil {
		r.CancelledAt = patch.CancelledAt
		r.CancellationReason = patch.CancellationReason
	}
}

// fakeProfiles serves identity lookups from maps
type fakeProfiles struct {
	profiles map[uuid.UUID]*user.Profile
	drivers  map[uuid.UUID]*user.DriverProfile
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*user.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) GetDriverProfile(_ context.Context, id uuid.UUID) (*user.DriverProfile, error) {
	dp, ok := f.drivers[id]
	if !ok {
		return nil, user.ErrDriverProfileNotFound
	}
	return dp, nil
}

// fakeNotifier records notifications and events
type fakeNotifier struct {
	mu            sync.Mutex
	notifications []string
	rideEvents    []ride.Status
	offerEvents   int
}

func (f *fakeNotifier) Notify(_ context.Context, _ uuid.UUID, title, _ string, _ notification.Type, _ *uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, title)
}

func (f *fakeNotifier) RideStatusChanged(r *ride.Ride) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rideEvents = append(f.rideEvents, r.Status)
}

func (f *fakeNotifier) OfferReceived(_ *offer.PriceOffer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offerEvents++
}

type fixture struct {
	coord     *Coordinator
	store     *memStore
	notifier  *fakeNotifier
	passenger uuid.UUID
	drivers   []uuid.UUID
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, err := logger.New(logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)

	passenger := uuid.New()
	profiles := &fakeProfiles{
		profiles: map[uuid.UUID]*user.Profile{
			passenger: {ID: passenger, FullName: "Ana", UserType: user.TypePassenger, Rating: 5.00},
		},
		drivers: map[uuid.UUID]*user.DriverProfile{},
	}

	var drivers []uuid.UUID
	for i := 0; i < 3; i++ {
		id := uuid.New()
		drivers = append(drivers, id)
		profiles.profiles[id] = &user.Profile{ID: id, UserType: user.TypeDriver, Rating: 5.00}
		profiles.drivers[id] = &user.DriverProfile{ID: id, VehicleType: user.VehicleEconomy, IsAvailable: true}
	}

	store := newMemStore()
	notifier := &fakeNotifier{}
	coord := NewCoordinator(store, profiles, notifier, notifier, nil, log, Config{})

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	coord.now = func() time.Time { return now }

	return &fixture{coord: coord, store: store, notifier: notifier, passenger: passenger, drivers: drivers, now: now}
}

func (f *fixture) createRide(t *testing.T, price float64) *ride.Ride {
	t.Helper()
	r, err := f.coord.CreateRide(context.Background(), CreateRideInput{
		PassengerID:         f.passenger,
		PickupLat:           -23.5614,
		PickupLng:           -46.6558,
		PickupAddress:       "Av. Paulista, 1578",
		DropoffLat:          -23.5629,
		DropoffLng:          -46.6944,
		DropoffAddress:      "R. dos Pinheiros, 100",
		PassengerPriceOffer: &price,
		PaymentMethod:       ride.PaymentCash,
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) submitOffer(t *testing.T, rideID, driverID uuid.UUID, price float64) *offer.PriceOffer {
	t.Helper()
	o, err := f.coord.SubmitOffer(context.Background(), SubmitOfferInput{
		RideID:   rideID,
		DriverID: driverID,
		Price:    price,
	})
	require.NoError(t, err)
	return o
}

// TestCreateRide_Defaults tests a new ride starts pending with no driver
func TestCreateRide_Defaults(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)

	assert.Equal(t, ride.StatusPending, r.Status)
	assert.Nil(t, r.DriverID)
	assert.Nil(t, r.FinalPrice)
	assert.Equal(t, 20.00, *r.PassengerPriceOffer)
}

// TestCreateRide_Validation tests price and payment method validation
func TestCreateRide_Validation(t *testing.T) {
	f := newFixture(t)

	bad := -5.0
	_, err := f.coord.CreateRide(context.Background(), CreateRideInput{
		PassengerID:         f.passenger,
		PassengerPriceOffer: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = f.coord.CreateRide(context.Background(), CreateRideInput{
		PassengerID:   f.passenger,
		PaymentMethod: "bitcoin",
	})
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

// TestSubmitOffer_MovesRideToNegotiating tests the first offer transition
func TestSubmitOffer_MovesRideToNegotiating(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)

	o := f.submitOffer(t, r.ID, f.drivers[0], 18.50)
	assert.Equal(t, offer.StatusPending, o.Status)
	assert.Equal(t, f.now.Add(24*time.Hour), o.ExpiresAt)

	got, err := f.coord.GetRide(context.Background(), r.ID, f.passenger)
	require.NoError(t, err)
	assert.Equal(t, ride.StatusNegotiating, got.Status)
}

// TestSubmitOffer_Guards tests offer submission guards
func TestSubmitOffer_Guards(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)

	_, err := f.coord.SubmitOffer(context.Background(), SubmitOfferInput{
		RideID: r.ID, DriverID: f.drivers[0], Price: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	// passenger has no driver profile
	_, err = f.coord.SubmitOffer(context.Background(), SubmitOfferInput{
		RideID: r.ID, DriverID: f.passenger, Price: 18.50,
	})
	assert.ErrorIs(t, err, ErrNotADriver)

	// closed ride rejects offers
	_, err = f.coord.CancelRide(context.Background(), r.ID, f.passenger, "changed plans")
	require.NoError(t, err)
	_, err = f.coord.SubmitOffer(context.Background(), SubmitOfferInput{
		RideID: r.ID, DriverID: f.drivers[0], Price: 18.50,
	})
	assert.ErrorIs(t, err, ErrRideNotOpen)
}

// TestAcceptOffer_HappyPath tests accepting one of several offers
func TestAcceptOffer_HappyPath(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)

	winner := f.submitOffer(t, r.ID, f.drivers[0], 18.50)
	loser1 := f.submitOffer(t, r.ID, f.drivers[1], 20.00)
	loser2 := f.submitOffer(t, r.ID, f.drivers[2], 16.00)

	accepted, err := f.coord.AcceptOffer(context.Background(), r.ID, winner.ID, f.passenger)
	require.NoError(t, err)

	assert.Equal(t, ride.StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.DriverID)
	assert.Equal(t, f.drivers[0], *accepted.DriverID)
	require.NotNil(t, accepted.FinalPrice)
	assert.Equal(t, 18.50, *accepted.FinalPrice)

	for _, id := range []uuid.UUID{loser1.ID, loser2.ID} {
		o, err := f.store.GetOffer(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, offer.StatusRejected, o.Status)
	}
	won, err := f.store.GetOffer(context.Background(), winner.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusAccepted, won.Status)
}

// TestAcceptOffer_Guards tests accept authorization and state guards
func TestAcceptOffer_Guards(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)
	o := f.submitOffer(t, r.ID, f.drivers[0], 18.50)

	// only the passenger accepts
	_, err := f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.drivers[1])
	assert.ErrorIs(t, err, ErrNotPassenger)

	// offer must belong to the ride
	other := f.createRide(t, 25.00)
	_, err = f.coord.AcceptOffer(context.Background(), other.ID, o.ID, f.passenger)
	assert.ErrorIs(t, err, ErrOfferMismatch)

	// cancelled ride fails with an invalid transition
	_, err = f.coord.CancelRide(context.Background(), r.ID, f.passenger, "")
	require.NoError(t, err)
	_, err = f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.passenger)
	assert.ErrorIs(t, err, ride.ErrInvalidTransition)
}

// TestAcceptOffer_Expired tests that a lapsed offer cannot win
func TestAcceptOffer_Expired(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)
	o := f.submitOffer(t, r.ID, f.drivers[0], 18.50)

	f.coord.now = func() time.Time { return f.now.Add(24*time.Hour + time.Minute) }

	_, err := f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.passenger)
	assert.ErrorIs(t, err, offer.ErrOfferExpired)
}

// TestAcceptOffer_SecondOfferLoses tests that the loser gets a conflict
func TestAcceptOffer_SecondOfferLoses(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)
	first := f.submitOffer(t, r.ID, f.drivers[0], 18.50)
	second := f.submitOffer(t, r.ID, f.drivers[1], 17.00)

	_, err := f.coord.AcceptOffer(context.Background(), r.ID, first.ID, f.passenger)
	require.NoError(t, err)

	_, err = f.coord.AcceptOffer(context.Background(), r.ID, second.ID, f.passenger)
	assert.ErrorIs(t, err, ErrRideAlreadyAccepted)
}

// TestAcceptOffer_IdempotentRetry tests re-accepting the winning offer
func TestAcceptOffer_IdempotentRetry(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)
	o := f.submitOffer(t, r.ID, f.drivers[0], 18.50)

	first, err := f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.passenger)
	require.NoError(t, err)

	retry, err := f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.passenger)
	require.NoError(t, err)
	assert.Equal(t, first.Status, retry.Status)
	assert.Equal(t, *first.FinalPrice, *retry.FinalPrice)
}

// TestAcceptOffer_ConcurrentExactlyOneWins tests the accept race
func TestAcceptOffer_ConcurrentExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)

	offers := make([]*offer.PriceOffer, len(f.drivers))
	for i, d := range f.drivers {
		offers[i] = f.submitOffer(t, r.ID, d, 15.00+float64(i))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(offers))
	for i := range offers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.coord.AcceptOffer(context.Background(), r.ID, offers[i].ID, f.passenger)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrRideAlreadyAccepted)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent accept should succeed")

	got, err := f.store.GetRide(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, ride.StatusAccepted, got.Status)

	acceptedCount := 0
	for _, o := range offers {
		cur, err := f.store.GetOffer(context.Background(), o.ID)
		require.NoError(t, err)
		if cur.Status == offer.StatusAccepted {
			acceptedCount++
		} else {
			assert.Equal(t, offer.StatusRejected, cur.Status)
		}
	}
	assert.Equal(t, 1, acceptedCount)
}

// TestStartRide_Guards tests that only an accepted ride starts
func TestStartRide_Guards(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)
	o := f.submitOffer(t, r.ID, f.drivers[0], 18.50)

	// pending/negotiating ride cannot start
	_, err := f.coord.StartRide(context.Background(), r.ID, f.drivers[0])
	assert.ErrorIs(t, err, ErrNotAssignedDriver)

	_, err = f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.passenger)
	require.NoError(t, err)

	// only the assigned driver starts
	_, err = f.coord.StartRide(context.Background(), r.ID, f.drivers[1])
	assert.ErrorIs(t, err, ErrNotAssignedDriver)

	started, err := f.coord.StartRide(context.Background(), r.ID, f.drivers[0])
	require.NoError(t, err)
	assert.Equal(t, ride.StatusInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)

	// starting twice fails
	_, err = f.coord.StartRide(context.Background(), r.ID, f.drivers[0])
	assert.ErrorIs(t, err, ride.ErrInvalidTransition)
}

// TestCancelRide_Guards tests cancellation windows
func TestCancelRide_Guards(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)
	o := f.submitOffer(t, r.ID, f.drivers[0], 18.50)

	_, err := f.coord.CancelRide(context.Background(), r.ID, f.drivers[1], "")
	assert.ErrorIs(t, err, ErrNotAParty)

	_, err = f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.passenger)
	require.NoError(t, err)
	_, err = f.coord.StartRide(context.Background(), r.ID, f.drivers[0])
	require.NoError(t, err)

	// in-progress rides cannot be cancelled
	_, err = f.coord.CancelRide(context.Background(), r.ID, f.passenger, "too late")
	assert.ErrorIs(t, err, ride.ErrInvalidTransition)
}

// TestCompleteRide_WalletSettlement tests settlement entries on completion
func TestCompleteRide_WalletSettlement(t *testing.T) {
	f := newFixture(t)
	price := 18.50
	r, err := f.coord.CreateRide(context.Background(), CreateRideInput{
		PassengerID:         f.passenger,
		PassengerPriceOffer: &price,
		PaymentMethod:       ride.PaymentWallet,
	})
	require.NoError(t, err)

	o := f.submitOffer(t, r.ID, f.drivers[0], price)
	_, err = f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.passenger)
	require.NoError(t, err)
	_, err = f.coord.StartRide(context.Background(), r.ID, f.drivers[0])
	require.NoError(t, err)

	completed, err := f.coord.CompleteRide(context.Background(), r.ID, f.drivers[0])
	require.NoError(t, err)
	assert.Equal(t, ride.StatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	require.Len(t, f.store.ledger, 2)
	var debit, credit *wallet.Transaction
	for _, tx := range f.store.ledger {
		switch tx.Type {
		case wallet.TypeDebit:
			debit = tx
		case wallet.TypeCredit:
			credit = tx
		}
	}
	require.NotNil(t, debit)
	require.NotNil(t, credit)
	assert.Equal(t, f.passenger, debit.UserID)
	assert.Equal(t, f.drivers[0], credit.UserID)
	assert.Equal(t, price, debit.Amount)
	assert.Equal(t, price, credit.Amount)
}

// TestCompleteRide_CashNoSettlement tests cash rides skip the ledger
func TestCompleteRide_CashNoSettlement(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)
	o := f.submitOffer(t, r.ID, f.drivers[0], 18.50)
	_, err := f.coord.AcceptOffer(context.Background(), r.ID, o.ID, f.passenger)
	require.NoError(t, err)
	_, err = f.coord.StartRide(context.Background(), r.ID, f.drivers[0])
	require.NoError(t, err)
	_, err = f.coord.CompleteRide(context.Background(), r.ID, f.drivers[0])
	require.NoError(t, err)

	assert.Empty(t, f.store.ledger)
}

// TestExpireStaleOffers tests the lazy sweep
func TestExpireStaleOffers(t *testing.T) {
	f := newFixture(t)
	r := f.createRide(t, 20.00)
	stale := f.submitOffer(t, r.ID, f.drivers[0], 18.50)

	f.coord.now = func() time.Time { return f.now.Add(25 * time.Hour) }
	fresh := f.submitOffer(t, r.ID, f.drivers[1], 19.00)

	n, err := f.coord.ExpireStaleOffers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	o, err := f.store.GetOffer(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusExpired, o.Status)

	o, err = f.store.GetOffer(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusPending, o.Status)
}

// TestListOpenRides_DriverOnly tests the bidding feed gate
func TestListOpenRides_DriverOnly(t *testing.T) {
	f := newFixture(t)
	f.createRide(t, 20.00)

	_, err := f.coord.ListOpenRides(context.Background(), f.passenger, 10)
	assert.ErrorIs(t, err, ErrNotADriver)

	rides, err := f.coord.ListOpenRides(context.Background(), f.drivers[0], 10)
	require.NoError(t, err)
	assert.Len(t, rides, 1)
}
