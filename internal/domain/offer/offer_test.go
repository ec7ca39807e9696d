package offer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestIsExpired tests the expiry check
func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o := &PriceOffer{ExpiresAt: now.Add(24 * time.Hour)}

	assert.False(t, o.IsExpired(now))
	assert.False(t, o.IsExpired(o.ExpiresAt))
	assert.True(t, o.IsExpired(o.ExpiresAt.Add(time.Second)))
}

// TestIsAcceptable tests the combined status and expiry guard
func TestIsAcceptable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name      string
		status    Status
		expiresAt time.Time
		want      bool
	}{
		{"pending and fresh", StatusPending, future, true},
		{"pending but lapsed", StatusPending, past, false},
		{"already accepted", StatusAccepted, future, false},
		{"already rejected", StatusRejected, future, false},
		{"swept expired", StatusExpired, future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &PriceOffer{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, o.IsAcceptable(now))
		})
	}
}
