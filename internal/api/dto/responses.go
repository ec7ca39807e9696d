package dto

import (
	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/offer"
	"github.com/uppi/backend/internal/domain/user"
	"github.com/uppi/backend/pkg/auth"
)

// AuthResponse returns the profile with its token pair
type AuthResponse struct {
	User   *user.Profile   `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// OfferDriver is the driver projection shown alongside an offer so the
// passenger can compare bids without extra requests.
type OfferDriver struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Rating       float64   `json:"rating"`
	TotalRides   int       `json:"total_rides"`
	VehicleType  string    `json:"vehicle_type,omitempty"`
	VehicleBrand string    `json:"vehicle_brand,omitempty"`
	VehicleModel string    `json:"vehicle_model,omitempty"`
	VehicleColor string    `json:"vehicle_color,omitempty"`
}

// OfferResponse is a price offer enriched with its driver
type OfferResponse struct {
	*offer.PriceOffer
	Driver *OfferDriver `json:"driver,omitempty"`
}

// BalanceResponse returns the derived wallet balance
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}
