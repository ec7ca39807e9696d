package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type distinguishes passengers from drivers; "both" keeps passenger access
// after driver registration.
type Type string

const (
	TypePassenger Type = "passenger"
	TypeDriver    Type = "driver"
	TypeBoth      Type = "both"
)

// VehicleType matches the vehicle classes drivers register with
type VehicleType string

const (
	VehicleEconomy VehicleType = "economy"
	VehicleComfort VehicleType = "comfort"
	VehiclePremium VehicleType = "premium"
	VehicleSUV     VehicleType = "suv"
	VehicleMoto    VehicleType = "moto"
)

// Profile represents a user account
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	UserType     Type      `json:"user_type"`
	Rating       float64   `json:"rating"`
	TotalRides   int       `json:"total_rides"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DriverProfile holds a driver's license and vehicle details
type DriverProfile struct {
	ID            uuid.UUID   `json:"id"`
	LicenseNumber string      `json:"license_number"`
	VehicleType   VehicleType `json:"vehicle_type"`
	VehicleBrand  string      `json:"vehicle_brand"`
	VehicleModel  string      `json:"vehicle_model"`
	VehicleYear   int         `json:"vehicle_year"`
	VehiclePlate  string      `json:"vehicle_plate"`
	VehicleColor  string      `json:"vehicle_color"`
	IsVerified    bool        `json:"is_verified"`
	IsAvailable   bool        `json:"is_available"`
	CurrentLat    *float64    `json:"current_lat,omitempty"`
	CurrentLng    *float64    `json:"current_lng,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Repository interface
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error

	CreateDriverProfile(ctx context.Context, dp *DriverProfile) error
	GetDriverProfile(ctx context.Context, id uuid.UUID) (*DriverProfile, error)
	SetDriverAvailability(ctx context.Context, id uuid.UUID, available bool) error
	UpdateDriverLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error
}

// Errors
var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrDriverProfileNotFound = errors.New("driver profile not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrAlreadyDriver         = errors.New("driver profile already exists")
)

// IsValid validates the vehicle type
func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleEconomy, VehicleComfort, VehiclePremium, VehicleSUV, VehicleMoto:
		return true
	}
	return false
}

// IsDriver reports whether the profile has driver access.
func (p *Profile) IsDriver() bool {
	return p.UserType == TypeDriver || p.UserType == TypeBoth
}
