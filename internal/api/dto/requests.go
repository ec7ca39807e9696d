package dto

import "time"

// RegisterRequest represents a signup request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	UserType string `json:"user_type" binding:"omitempty,oneof=passenger driver"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest carries partial profile changes
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

// RegisterDriverRequest registers the caller as a driver
type RegisterDriverRequest struct {
	LicenseNumber string `json:"license_number" binding:"required"`
	VehicleType   string `json:"vehicle_type" binding:"required,oneof=economy comfort premium suv moto"`
	VehicleBrand  string `json:"vehicle_brand" binding:"required"`
	VehicleModel  string `json:"vehicle_model" binding:"required"`
	VehicleYear   int    `json:"vehicle_year" binding:"required,min=1990"`
	VehiclePlate  string `json:"vehicle_plate" binding:"required"`
	VehicleColor  string `json:"vehicle_color" binding:"required"`
}

// UpdateLocationRequest represents a driver location update
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// SetAvailabilityRequest toggles a driver's availability
type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// CreateRideRequest represents a request to create a new ride
type CreateRideRequest struct {
	PickupLat           float64    `json:"pickup_lat" binding:"required"`
	PickupLng           float64    `json:"pickup_lng" binding:"required"`
	PickupAddress       string     `json:"pickup_address" binding:"required"`
	DropoffLat          float64    `json:"dropoff_lat" binding:"required"`
	DropoffLng          float64    `json:"dropoff_lng" binding:"required"`
	DropoffAddress      string     `json:"dropoff_address" binding:"required"`
	PassengerPriceOffer *float64   `json:"passenger_price_offer"`
	PaymentMethod       string     `json:"payment_method" binding:"omitempty,oneof=cash credit_card debit_card pix wallet"`
	DistanceKM          *float64   `json:"distance_km"`
	EstimatedDuration   *int       `json:"estimated_duration_minutes"`
	ScheduledTime       *time.Time `json:"scheduled_time"`
	Notes               string     `json:"notes"`
}

// CancelRideRequest carries the cancellation reason
type CancelRideRequest struct {
	Reason string `json:"reason"`
}

// SubmitOfferRequest represents a driver's price offer
type SubmitOfferRequest struct {
	Price   float64 `json:"price" binding:"required,gt=0"`
	Message string  `json:"message"`
}

// SubmitRatingRequest represents a post-ride rating
type SubmitRatingRequest struct {
	RideID  string   `json:"ride_id" binding:"required,uuid"`
	Score   int      `json:"score" binding:"required,min=1,max=5"`
	Comment string   `json:"comment"`
	Tags    []string `json:"tags"`
}

// WalletOperationRequest represents a manual deposit or withdrawal
type WalletOperationRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// CreateFavoriteRequest saves a place for quick ride requests
type CreateFavoriteRequest struct {
	Label     string  `json:"label" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}
