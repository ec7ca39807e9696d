package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type categorizes notifications for client-side rendering
type Type string

const (
	TypeRide   Type = "ride"
	TypeOffer  Type = "offer"
	TypeWallet Type = "wallet"
	TypeSystem Type = "system"
)

// Notification is a persisted message to a user
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      Type       `json:"type"`
	RideID    *uuid.UUID `json:"ride_id,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

// Repository interface
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
