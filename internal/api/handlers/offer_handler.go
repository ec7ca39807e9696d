package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uppi/backend/internal/api/dto"
	"github.com/uppi/backend/internal/domain/offer"
	"github.com/uppi/backend/internal/service/negotiation"
	"github.com/uppi/backend/pkg/logger"
)

// SubmitOffer handles POST /v1/rides/:id/offers
func (h *Handlers) SubmitOffer(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	rideID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	o, err := h.Rides.SubmitOffer(c.Request.Context(), negotiation.SubmitOfferInput{
		RideID:   rideID,
		DriverID: userID,
		Price:    req.Price,
		Message:  req.Message,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.Monitor != nil {
		h.Monitor.RecordOfferSubmitted(rideID.String(), o.OfferedPrice)
	}
	c.JSON(http.StatusCreated, o)
}

// ListOffers handles GET /v1/rides/:id/offers, offers enriched with the
// offering driver's name, rating and vehicle.
func (h *Handlers) ListOffers(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	rideID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	offers, err := h.Rides.ListOffers(c.Request.Context(), rideID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": h.enrichOffers(c, offers)})
}

// AcceptOffer handles POST /v1/rides/:id/offers/:offer_id/accept
func (h *Handlers) AcceptOffer(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	rideID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	offerID, ok := pathUUID(c, "offer_id")
	if !ok {
		return
	}

	r, err := h.Rides.AcceptOffer(c.Request.Context(), rideID, offerID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.Monitor != nil && r.FinalPrice != nil {
		h.Monitor.RecordOfferAccepted(rideID.String(), *r.FinalPrice)
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handlers) enrichOffers(c *gin.Context, offers []*offer.PriceOffer) []dto.OfferResponse {
	out := make([]dto.OfferResponse, 0, len(offers))
	for _, o := range offers {
		resp := dto.OfferResponse{PriceOffer: o}

		profile, err := h.Accounts.GetProfile(c.Request.Context(), o.DriverID)
		if err != nil {
			h.Logger.Warn("Failed to load offer driver profile",
				logger.String("driver_id", o.DriverID.String()),
				logger.Err(err),
			)
			out = append(out, resp)
			continue
		}

		d := &dto.OfferDriver{
			ID:         profile.ID,
			FullName:   profile.FullName,
			Rating:     profile.Rating,
			TotalRides: profile.TotalRides,
		}
		if dp, err := h.Accounts.GetDriverProfile(c.Request.Context(), o.DriverID); err == nil {
			d.VehicleType = string(dp.VehicleType)
			d.VehicleBrand = dp.VehicleBrand
			d.VehicleModel = dp.VehicleModel
			d.VehicleColor = dp.VehicleColor
		}
		resp.Driver = d
		out = append(out, resp)
	}
	return out
}
