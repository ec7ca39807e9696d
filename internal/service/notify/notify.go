package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/notification"
	"github.com/uppi/backend/internal/domain/offer"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/pkg/logger"
	"github.com/uppi/backend/pkg/websocket"
)

// Service persists notifications and pushes them over WebSocket. Every method
// is fire-and-forget: failures are logged, never returned, so a broken
// notification path cannot fail a ride operation.
type Service struct {
	repo   notification.Repository
	hub    *websocket.Hub
	logger *logger.Logger
}

// NewService creates a new notification service
func NewService(repo notification.Repository, hub *websocket.Hub, log *logger.Logger) *Service {
	return &Service{repo: repo, hub: hub, logger: log}
}

// Notify stores a notification and pushes it to the user's open connections
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, title, message string, typ notification.Type, rideID *uuid.UUID) {
	n := &notification.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		RideID:    rideID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to persist notification",
			logger.String("user_id", userID.String()),
			logger.String("title", title),
			logger.Err(err),
		)
	}

	s.hub.SendToUser(userID.String(), websocket.Message{
		Type: "notification",
		Data: n,
	})
}

// RideStatusChanged pushes a ride update to its subscribers. Newly created
// rides are also announced to connected drivers so they can start bidding.
func (s *Service) RideStatusChanged(r *ride.Ride) {
	msg := websocket.Message{
		Type: "ride_status",
		Data: r,
	}
	s.hub.BroadcastToRide(r.ID.String(), msg)
	if r.Status == ride.StatusPending {
		s.hub.BroadcastToDrivers(websocket.Message{
			Type: "ride_opened",
			Data: r,
		})
	}
}

// OfferReceived pushes a new offer to the ride's subscribers
func (s *Service) OfferReceived(o *offer.PriceOffer) {
	s.hub.BroadcastToRide(o.RideID.String(), websocket.Message{
		Type: "offer_received",
		Data: o,
	})
}
