package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHaversine tests great-circle distances against known pairs
func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKM                 float64
		tolerance              float64
	}{
		{"same point", -23.5505, -46.6333, -23.5505, -46.6333, 0, 0.001},
		{"sao paulo to rio", -23.5505, -46.6333, -22.9068, -43.1729, 360.7, 5},
		{"one degree of latitude", 0, 0, 1, 0, 111.19, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.wantKM, got, tt.tolerance)
		})
	}
}

// TestEstimateRoute tests road factor and duration derivation
func TestEstimateRoute(t *testing.T) {
	e := NewEstimator(DefaultConfig())

	straight := Haversine(-23.5614, -46.6558, -23.5629, -46.6944)
	km, minutes := e.EstimateRoute(-23.5614, -46.6558, -23.5629, -46.6944)

	assert.InDelta(t, straight*1.3, km, 0.01)
	assert.Greater(t, km, straight, "road distance exceeds straight line")
	assert.GreaterOrEqual(t, minutes, 1)
}

// TestEstimateRoute_ZeroDistance tests a degenerate route
func TestEstimateRoute_ZeroDistance(t *testing.T) {
	e := NewEstimator(DefaultConfig())
	km, minutes := e.EstimateRoute(10, 10, 10, 10)
	assert.Equal(t, 0.0, km)
	assert.Equal(t, 0, minutes)
}

// TestNewEstimator_Defaults tests zero config falls back to defaults
func TestNewEstimator_Defaults(t *testing.T) {
	e := NewEstimator(Config{})
	assert.Equal(t, 1.3, e.config.RoadFactor)
	assert.Equal(t, 30.0, e.config.AvgSpeedKMH)
}
