package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uppi/backend/internal/api/dto"
	"github.com/uppi/backend/internal/domain/user"
	"github.com/uppi/backend/internal/service/account"
)

// RegisterDriver handles POST /v1/drivers
func (h *Handlers) RegisterDriver(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	dp, err := h.Accounts.RegisterDriver(c.Request.Context(), userID, account.RegisterDriverInput{
		LicenseNumber: req.LicenseNumber,
		VehicleType:   user.VehicleType(req.VehicleType),
		VehicleBrand:  req.VehicleBrand,
		VehicleModel:  req.VehicleModel,
		VehicleYear:   req.VehicleYear,
		VehiclePlate:  req.VehiclePlate,
		VehicleColor:  req.VehicleColor,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dp)
}

// GetDriverProfile handles GET /v1/drivers/me
func (h *Handlers) GetDriverProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	dp, err := h.Accounts.GetDriverProfile(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dp)
}

// SetAvailability handles PUT /v1/drivers/me/availability
func (h *Handlers) SetAvailability(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.Presence.SetAvailability(c.Request.Context(), userID, *req.Available); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": *req.Available})
}

// UpdateDriverLocation handles PUT /v1/drivers/me/location
func (h *Handlers) UpdateDriverLocation(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.Presence.UpdateLocation(c.Request.Context(), userID, req.Latitude, req.Longitude); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"latitude": req.Latitude, "longitude": req.Longitude})
}

// NearbyDrivers handles GET /v1/drivers/nearby?lat=&lng=&radius_km=
func (h *Handlers) NearbyDrivers(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat query parameter required", "code": "VALIDATION_ERROR"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng query parameter required", "code": "VALIDATION_ERROR"})
		return
	}
	radius, _ := strconv.ParseFloat(c.Query("radius_km"), 64)

	drivers, err := h.Presence.NearbyDrivers(c.Request.Context(), lat, lng, radius)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}
