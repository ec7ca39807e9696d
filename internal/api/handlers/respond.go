package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uppi/backend/internal/api/middleware"
	"github.com/uppi/backend/internal/domain/favorite"
	"github.com/uppi/backend/internal/domain/offer"
	"github.com/uppi/backend/internal/domain/rating"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/internal/domain/user"
	"github.com/uppi/backend/internal/domain/wallet"
	"github.com/uppi/backend/internal/service/account"
	"github.com/uppi/backend/internal/service/negotiation"
	"github.com/uppi/backend/internal/service/payments"
	"github.com/uppi/backend/internal/service/ratings"
	"github.com/uppi/backend/pkg/auth"
	apperrors "github.com/uppi/backend/pkg/errors"
	"github.com/uppi/backend/pkg/logger"
)

// respondError maps service errors onto the HTTP error taxonomy and writes
// the JSON body. Unrecognized errors become opaque 500s.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := translate(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed",
			logger.String("path", c.FullPath()),
			logger.Err(err),
		)
	}
	c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
}

func translate(err error) *apperrors.AppError {
	switch {
	// 401
	case errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired):
		return apperrors.Unauthorized("Invalid credentials", err)

	// 403
	case errors.Is(err, negotiation.ErrNotADriver):
		return apperrors.Forbidden("Only drivers can make offers", err)
	case errors.Is(err, negotiation.ErrNotPassenger):
		return apperrors.Forbidden("Only the passenger can accept offers", err)
	case errors.Is(err, negotiation.ErrNotAssignedDriver):
		return apperrors.Forbidden("Only the assigned driver can do this", err)
	case errors.Is(err, negotiation.ErrOwnRide):
		return apperrors.Forbidden("You cannot offer on your own ride", err)
	case errors.Is(err, negotiation.ErrNotAParty),
		errors.Is(err, ratings.ErrNotAParty):
		return apperrors.Forbidden("Not a party to this ride", err)

	// 404
	case errors.Is(err, ride.ErrRideNotFound):
		return apperrors.ErrRideNotFound
	case errors.Is(err, offer.ErrOfferNotFound):
		return apperrors.ErrOfferNotFound
	case errors.Is(err, user.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, user.ErrDriverProfileNotFound):
		return apperrors.NotFound("Driver profile not found", err)
	case errors.Is(err, rating.ErrRatingNotFound):
		return apperrors.NotFound("Rating not found", err)
	case errors.Is(err, favorite.ErrFavoriteNotFound):
		return apperrors.NotFound("Favorite not found", err)

	// 409 invalid transition
	case errors.Is(err, ride.ErrInvalidTransition):
		return apperrors.InvalidTransition("Ride status does not allow this operation", err)
	case errors.Is(err, ratings.ErrRideNotCompleted):
		return apperrors.InvalidTransition("Only completed rides can be rated", err)

	// 409 conflict
	case errors.Is(err, negotiation.ErrRideAlreadyAccepted):
		return apperrors.ErrRideAlreadyAccepted
	case errors.Is(err, negotiation.ErrRideNotOpen):
		return apperrors.ErrRideNotOpen
	case errors.Is(err, offer.ErrNotPending):
		return apperrors.Conflict("Offer has already been resolved", err)
	case errors.Is(err, rating.ErrAlreadyRated):
		return apperrors.ErrAlreadyRated
	case errors.Is(err, user.ErrEmailTaken):
		return apperrors.Conflict("Email already registered", err)
	case errors.Is(err, user.ErrAlreadyDriver):
		return apperrors.ErrDriverRegistered
	case errors.Is(err, favorite.ErrDuplicateLabel):
		return apperrors.Conflict("Favorite label already in use", err)
	case errors.Is(err, payments.ErrInsufficientFunds):
		return apperrors.Conflict("Insufficient wallet balance", err)

	// 410
	case errors.Is(err, offer.ErrOfferExpired):
		return apperrors.ErrOfferExpired

	// 400
	case errors.Is(err, negotiation.ErrInvalidPrice),
		errors.Is(err, wallet.ErrInvalidAmount):
		return apperrors.ErrInvalidAmount
	case errors.Is(err, negotiation.ErrInvalidPayment):
		return apperrors.ErrInvalidPaymentMethod
	case errors.Is(err, rating.ErrInvalidScore):
		return apperrors.ErrInvalidScore
	case errors.Is(err, negotiation.ErrOfferMismatch):
		return apperrors.BadRequest("Offer does not belong to this ride", err)
	case errors.Is(err, account.ErrInvalidUserType):
		return apperrors.BadRequest("User type must be passenger or driver", err)
	case errors.Is(err, payments.ErrIdempotencyKeyMissing):
		return apperrors.BadRequest("Idempotency-Key header required", err)
	}

	return apperrors.GetAppError(err)
}

// currentUser reads the authenticated user from context; the auth middleware
// guarantees it is set on protected routes.
func (h *Handlers) currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "code": "UNAUTHORIZED"})
	}
	return id, ok
}

// pathUUID parses a UUID path parameter
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name, "code": "VALIDATION_ERROR"})
		return uuid.Nil, false
	}
	return id, true
}
