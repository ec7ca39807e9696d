package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uppi/backend/internal/api/dto"
	"github.com/uppi/backend/internal/service/ratings"
)

// SubmitRating handles POST /v1/ratings
func (h *Handlers) SubmitRating(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride_id", "code": "VALIDATION_ERROR"})
		return
	}

	rt, err := h.Ratings.Submit(c.Request.Context(), userID, ratings.SubmitInput{
		RideID:  rideID,
		Score:   req.Score,
		Comment: req.Comment,
		Tags:    req.Tags,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rt)
}

// ListUserRatings handles GET /v1/profiles/:id/ratings
func (h *Handlers) ListUserRatings(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, err := h.Ratings.ListReceived(c.Request.Context(), id, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": list})
}

// GetMyRideRating handles GET /v1/rides/:id/rating, the rating the caller
// left for the ride.
func (h *Handlers) GetMyRideRating(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	rideID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	rt, err := h.Ratings.GetForRide(c.Request.Context(), rideID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}
