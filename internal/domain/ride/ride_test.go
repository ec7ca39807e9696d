package ride

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestStatusGuards tests the per-status transition guards
func TestStatusGuards(t *testing.T) {
	tests := []struct {
		status      Status
		isOpen      bool
		canStart    bool
		canComplete bool
		canCancel   bool
		isTerminal  bool
	}{
		{StatusPending, true, false, false, true, false},
		{StatusNegotiating, true, false, false, true, false},
		{StatusAccepted, false, true, false, true, false},
		{StatusInProgress, false, false, true, false, false},
		{StatusCompleted, false, false, false, false, true},
		{StatusCancelled, false, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Ride{Status: tt.status}
			assert.Equal(t, tt.isOpen, r.IsOpen())
			assert.Equal(t, tt.canStart, r.CanStart())
			assert.Equal(t, tt.canComplete, r.CanComplete())
			assert.Equal(t, tt.canCancel, r.CanCancel())
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
			assert.True(t, tt.status.IsValid())
		})
	}

	assert.False(t, Status("teleporting").IsValid())
}

// TestPaymentMethodIsValid tests payment method validation
func TestPaymentMethodIsValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentWallet} {
		assert.True(t, m.IsValid(), string(m))
	}
	assert.False(t, PaymentMethod("barter").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

// TestIsParty tests party membership checks
func TestIsParty(t *testing.T) {
	passenger := uuid.New()
	driver := uuid.New()
	stranger := uuid.New()

	unassigned := &Ride{PassengerID: passenger}
	assert.True(t, unassigned.IsParty(passenger))
	assert.False(t, unassigned.IsParty(driver))

	assigned := &Ride{PassengerID: passenger, DriverID: &driver}
	assert.True(t, assigned.IsParty(passenger))
	assert.True(t, assigned.IsParty(driver))
	assert.False(t, assigned.IsParty(stranger))
}

// TestCounterpart tests resolving the other party of a ride
func TestCounterpart(t *testing.T) {
	passenger := uuid.New()
	driver := uuid.New()

	r := &Ride{PassengerID: passenger, DriverID: &driver}

	other, ok := r.Counterpart(passenger)
	assert.True(t, ok)
	assert.Equal(t, driver, other)

	other, ok = r.Counterpart(driver)
	assert.True(t, ok)
	assert.Equal(t, passenger, other)

	_, ok = r.Counterpart(uuid.New())
	assert.False(t, ok)

	// no driver assigned yet
	open := &Ride{PassengerID: passenger}
	_, ok = open.Counterpart(passenger)
	assert.False(t, ok)
}
