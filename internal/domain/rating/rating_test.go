package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAggregate tests the displayed-rating computation
func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"no ratings", nil, 5.00},
		{"single score", []int{4}, 4.00},
		{"exact mean", []int{5, 3}, 4.00},
		{"rounds half up", []int{5, 4, 5}, 4.67},
		{"rounds down", []int{5, 4, 4}, 4.33},
		{"all ones", []int{1, 1, 1}, 1.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.scores))
		})
	}
}

// TestIsValidScore tests the score range check
func TestIsValidScore(t *testing.T) {
	for s := 1; s <= 5; s++ {
		assert.True(t, IsValidScore(s), "score %d", s)
	}
	assert.False(t, IsValidScore(0))
	assert.False(t, IsValidScore(6))
	assert.False(t, IsValidScore(-1))
}
