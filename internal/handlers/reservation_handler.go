package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/lifecycle"
	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/services"
)

// ReservationHandler handles reservation HTTP requests
type ReservationHandler struct {
	reservations *services.ReservationService
	logger       *logrus.Logger
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations *services.ReservationService, logger *logrus.Logger) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, logger: logger}
}

// List handles GET /api/v1/reservations?search=&status=
func (h *ReservationHandler) List(c *gin.Context) {
	var filter models.ReservationFilter
	if !bindQuery(c, &filter) {
		return
	}
	reservations, err := h.reservations.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations, "count": len(reservations)})
}

// Stats handles GET /api/v1/reservations/stats
func (h *ReservationHandler) Stats(c *gin.Context) {
	stats, err := h.reservations.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Get handles GET /api/v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	reservation, err := h.reservations.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// Create handles POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var req models.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	reservation, err := h.reservations.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// CreateBatch handles POST /api/v1/reservations/batch
func (h *ReservationHandler) CreateBatch(c *gin.Context) {
	reqs, ok := bindBatch[models.CreateReservationRequest](c)
	if !ok {
		return
	}
	created, err := h.reservations.CreateMany(c.Request.Context(), reqs)
	respondBatch(c, h.logger, created, err)
}

// Update handles PUT /api/v1/reservations/:id
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	reservation, err := h.reservations.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// Delete handles DELETE /api/v1/reservations/:id
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.reservations.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted", "id": id})
}

// Transition returns a handler for POST /api/v1/reservations/:id/<action>.
// A transition the current status does not allow answers 200 with
// changed=false.
func (h *ReservationHandler) Transition(action lifecycle.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		result, err := h.reservations.Transition(c.Request.Context(), id, action)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		if !result.Changed {
			h.logger.WithFields(logrus.Fields{
				"reservation_id": id,
				"action":         action,
				"status":         result.From,
			}).Info("Reservation transition skipped")
		}
		c.JSON(http.StatusOK, result)
	}
}
