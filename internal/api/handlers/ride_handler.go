package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uppi/backend/internal/api/dto"
	"github.com/uppi/backend/internal/domain/ride"
	"github.com/uppi/backend/internal/service/negotiation"
)

// CreateRide handles POST /v1/rides
func (h *Handlers) CreateRide(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	r, err := h.Rides.CreateRide(c.Request.Context(), negotiation.CreateRideInput{
		PassengerID:              userID,
		PickupLat:                req.PickupLat,
		PickupLng:                req.PickupLng,
		PickupAddress:            req.PickupAddress,
		DropoffLat:               req.DropoffLat,
		DropoffLng:               req.DropoffLng,
		DropoffAddress:           req.DropoffAddress,
		PassengerPriceOffer:      req.PassengerPriceOffer,
		PaymentMethod:            ride.PaymentMethod(req.PaymentMethod),
		DistanceKM:               req.DistanceKM,
		EstimatedDurationMinutes: req.EstimatedDuration,
		ScheduledTime:            req.ScheduledTime,
		Notes:                    req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.Monitor != nil {
		var offered float64
		if r.PassengerPriceOffer != nil {
			offered = *r.PassengerPriceOffer
		}
		h.Monitor.RecordRideCreated(r.ID.String(), offered)
	}
	c.JSON(http.StatusCreated, r)
}

// GetRide handles GET /v1/rides/:id
func (h *Handlers) GetRide(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	rideID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.Rides.GetRide(c.Request.Context(), rideID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ListMyRides handles GET /v1/rides?role=&status=&limit=
func (h *Handlers) ListMyRides(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	status := ride.Status(c.Query("status"))
	if status != "" && !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter", "code": "VALIDATION_ERROR"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	var (
		rides []*ride.Ride
		err   error
	)
	if c.Query("role") == "driver" {
		rides, err = h.Rides.ListDriverRides(c.Request.Context(), userID, status, limit)
	} else {
		rides, err = h.Rides.ListPassengerRides(c.Request.Context(), userID, status, limit)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

// ListOpenRides handles GET /v1/rides/open, the driver's bidding feed
func (h *Handlers) ListOpenRides(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	rides, err := h.Rides.ListOpenRides(c.Request.Context(), userID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *Handlers) CancelRide(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	rideID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.CancelRideRequest
	_ = c.ShouldBindJSON(&req) // reason is optional

	r, err := h.Rides.CancelRide(c.Request.Context(), rideID, userID, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// StartRide handles POST /v1/rides/:id/start
func (h *Handlers) StartRide(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	rideID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.Rides.StartRide(c.Request.Context(), rideID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// CompleteRide handles POST /v1/rides/:id/complete
func (h *Handlers) CompleteRide(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	rideID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.Rides.CompleteRide(c.Request.Context(), rideID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.Monitor != nil && r.FinalPrice != nil {
		h.Monitor.RecordRideCompleted(r.ID.String(), *r.FinalPrice, string(r.PaymentMethod))
	}
	c.JSON(http.StatusOK, r)
}
