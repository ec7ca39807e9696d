package presence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/uppi/backend/internal/domain/user"
	"github.com/uppi/backend/pkg/logger"
)

const (
	locationsKey = "drivers:locations"
	availableKey = "drivers:available"
)

// Service tracks driver availability and last known location. Redis GEO is
// the live view; the driver_profiles row is the durable fallback.
type Service struct {
	redis  *redis.Client
	users  user.Repository
	logger *logger.Logger
	config Config
}

// Config holds presence configuration
type Config struct {
	DefaultRadiusKM float64
	MaxCandidates   int
}

// NearbyDriver is one available driver near a point
type NearbyDriver struct {
	DriverID   uuid.UUID `json:"driver_id"`
	DistanceKM float64   `json:"distance_km"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
}

// NewService creates a new presence service
func NewService(redis *redis.Client, users user.Repository, log *logger.Logger, config Config) *Service {
	if config.DefaultRadiusKM <= 0 {
		config.DefaultRadiusKM = 5
	}
	if config.MaxCandidates <= 0 {
		config.MaxCandidates = 20
	}
	return &Service{redis: redis, users: users, logger: log, config: config}
}

// UpdateLocation records a driver's position in the GEO index and the durable
// profile row.
func (s *Service) UpdateLocation(ctx context.Context, driverID uuid.UUID, lat, lng float64) error {
	if err := s.users.UpdateDriverLocation(ctx, driverID, lat, lng); err != nil {
		return err
	}
	if err := s.redis.GeoAdd(ctx, locationsKey, &redis.GeoLocation{
		Name:      driverID.String(),
		Latitude:  lat,
		Longitude: lng,
	}).Err(); err != nil {
		// durable write succeeded, the GEO index catches up on the next ping
		s.logger.Warn("Failed to update driver geo index",
			logger.String("driver_id", driverID.String()),
			logger.Err(err),
		)
	}
	return nil
}

// SetAvailability toggles whether a driver appears in nearby searches
func (s *Service) SetAvailability(ctx context.Context, driverID uuid.UUID, available bool) error {
	if err := s.users.SetDriverAvailability(ctx, driverID, available); err != nil {
		return err
	}
	var err error
	if available {
		err = s.redis.SAdd(ctx, availableKey, driverID.String()).Err()
	} else {
		err = s.redis.SRem(ctx, availableKey, driverID.String()).Err()
	}
	if err != nil {
		s.logger.Warn("Failed to update availability set",
			logger.String("driver_id", driverID.String()),
			logger.Err(err),
		)
	}
	return nil
}

// NearbyDrivers finds available drivers around a point, nearest first
func (s *Service) NearbyDrivers(ctx context.Context, lat, lng, radiusKM float64) ([]*NearbyDriver, error) {
	if radiusKM <= 0 {
		radiusKM = s.config.DefaultRadiusKM
	}

	results, err := s.redis.GeoRadius(ctx, locationsKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusKM,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Count:     s.config.MaxCandidates,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby drivers: %w", err)
	}

	nearby := make([]*NearbyDriver, 0, len(results))
	for _, result := range results {
		driverID, err := uuid.Parse(result.Name)
		if err != nil {
			continue
		}
		isAvailable, err := s.redis.SIsMember(ctx, availableKey, result.Name).Result()
		if err != nil || !isAvailable {
			continue
		}
		nearby = append(nearby, &NearbyDriver{
			DriverID:   driverID,
			DistanceKM: result.Dist,
			Latitude:   result.Latitude,
			Longitude:  result.Longitude,
		})
	}
	return nearby, nil
}
