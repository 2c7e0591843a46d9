// Package server implements the journeys API surface: the feature intake,
// journey booking and user directory endpoints the client layer talks to.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Erhabor-Fona/using-retriofit/internal/domain"
	"github.com/Erhabor-Fona/using-retriofit/internal/logger"
	"github.com/Erhabor-Fona/using-retriofit/internal/storage"
)

// Handlers serves the journeys API endpoints.
type Handlers struct {
	store storage.Store
	log   logger.Logger
}

// NewHandlers builds the handler set over the given store.
func NewHandlers(store storage.Store, log logger.Logger) *Handlers {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Handlers{store: store, log: log}
}

// SubmitFeature answers POST /new-endpoint.
func (h *Handlers) SubmitFeature(c *gin.Context) {
	var req domain.FeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.FeatureResponse{
			Success: false,
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	h.log.InfoObj("feature request accepted", "feature_request", req)
	resp := domain.FeatureResponse{
		Success: true,
		Message: "feature accepted",
		Data: map[string]any{
			"param1": req.Param1,
			"param2": req.Param2,
		},
	}
	if req.OptionalParam != nil {
		resp.Data["optionalParam"] = *req.OptionalParam
	}
	c.JSON(http.StatusOK, resp)
}

// BookJourney answers POST /user/book-journey.
func (h *Handlers) BookJourney(c *gin.Context) {
	var req domain.JourneyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "rejected",
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	booking := domain.Booking{
		Ref:       uuid.NewString(),
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.SaveBooking(booking); err != nil {
		h.log.ErrorObj("booking save failed", "save_error", map[string]any{
			"journey_id": req.JourneyID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "could not store booking",
		})
		return
	}

	h.log.InfoObj("journey booked", "booking", map[string]any{
		"ref":        booking.Ref,
		"journey_id": req.JourneyID,
		"passengers": len(req.Passengers),
		"test_mode":  req.TestMode,
	})
	c.JSON(http.StatusOK, domain.BookingConfirmation{
		Status:     "confirmed",
		BookingRef: booking.Ref,
		Message:    "journey booked successfully",
	})
}

// ListUsers answers GET /users.
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers()
	if err != nil {
		h.log.ErrorObj("user listing failed", "list_error", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, domain.UsersResponse{
			Status:  "error",
			Message: "could not read users",
		})
		return
	}
	if users == nil {
		users = []domain.User{}
	}

	c.JSON(http.StatusOK, domain.UsersResponse{
		Status:  "success",
		Message: "users fetched successfully",
		Data:    users,
	})
}
