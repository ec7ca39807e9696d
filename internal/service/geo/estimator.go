package geo

import (
	"math"
)

// Estimator produces advisory route estimates from straight-line geometry.
// Estimates inform the negotiation but never price a ride; the agreed offer
// price is final regardless of actual distance.
type Estimator struct {
	config Config
}

// Config holds estimation tunables
type Config struct {
	RoadFactor  float64 // multiplier from straight-line to road distance
	AvgSpeedKMH float64 // assumed average urban speed
}

// DefaultConfig returns estimation defaults suitable for urban trips
func DefaultConfig() Config {
	return Config{
		RoadFactor:  1.3,
		AvgSpeedKMH: 30,
	}
}

// NewEstimator creates a new route estimator
func NewEstimator(config Config) *Estimator {
	if config.RoadFactor <= 0 {
		config.RoadFactor = 1.3
	}
	if config.AvgSpeedKMH <= 0 {
		config.AvgSpeedKMH = 30
	}
	return &Estimator{config: config}
}

// EstimateRoute returns approximate road distance and travel time between two
// points.
func (e *Estimator) EstimateRoute(pickupLat, pickupLng, dropoffLat, dropoffLng float64) (float64, int) {
	km := Haversine(pickupLat, pickupLng, dropoffLat, dropoffLng) * e.config.RoadFactor
	km = math.Round(km*100) / 100
	minutes := int(math.Ceil(km / e.config.AvgSpeedKMH * 60))
	return km, minutes
}

// Haversine calculates great-circle distance between two points in kilometers
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371 // kilometers

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
