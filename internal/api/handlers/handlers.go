package handlers

import (
	"github.com/uppi/backend/internal/domain/favorite"
	"github.com/uppi/backend/internal/domain/notification"
	"github.com/uppi/backend/internal/service/account"
	"github.com/uppi/backend/internal/service/negotiation"
	"github.com/uppi/backend/internal/service/payments"
	"github.com/uppi/backend/internal/service/presence"
	"github.com/uppi/backend/internal/service/ratings"
	"github.com/uppi/backend/pkg/auth"
	"github.com/uppi/backend/pkg/logger"
	"github.com/uppi/backend/pkg/monitoring"
	"github.com/uppi/backend/pkg/websocket"
)

// Handlers holds all handler dependencies
type Handlers struct {
	Accounts      *account.Service
	Rides         *negotiation.Coordinator
	Ratings       *ratings.Service
	Payments      *payments.Service
	Presence      *presence.Service
	Notifications notification.Repository
	Favorites     favorite.Repository
	Tokens        *auth.Manager
	Hub           *websocket.Hub
	Monitor       *monitoring.NewRelicApp
	Logger        *logger.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	accounts *account.Service,
	rides *negotiation.Coordinator,
	ratingsSvc *ratings.Service,
	paymentsSvc *payments.Service,
	presenceSvc *presence.Service,
	notifications notification.Repository,
	favorites favorite.Repository,
	tokens *auth.Manager,
	hub *websocket.Hub,
	monitor *monitoring.NewRelicApp,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		Accounts:      accounts,
		Rides:         rides,
		Ratings:       ratingsSvc,
		Payments:      paymentsSvc,
		Presence:      presenceSvc,
		Notifications: notifications,
		Favorites:     favorites,
		Tokens:        tokens,
		Hub:           hub,
		Monitor:       monitor,
		Logger:        log,
	}
}
