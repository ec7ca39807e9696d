package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uppi/backend/internal/api/dto"
	"github.com/uppi/backend/internal/service/account"
)

// GetMe handles GET /v1/profiles/me
func (h *Handlers) GetMe(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	profile, err := h.Accounts.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe handles PATCH /v1/profiles/me
func (h *Handlers) UpdateMe(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	profile, err := h.Accounts.UpdateProfile(c.Request.Context(), userID, account.UpdateProfileInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile handles GET /v1/profiles/:id, the public view other parties see
// during negotiation.
func (h *Handlers) GetProfile(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.Accounts.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          profile.ID,
		"full_name":   profile.FullName,
		"avatar_url":  profile.AvatarURL,
		"user_type":   profile.UserType,
		"rating":      profile.Rating,
		"total_rides": profile.TotalRides,
	})
}
