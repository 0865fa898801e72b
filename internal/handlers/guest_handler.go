package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/services"
)

// GuestHandler handles guest profile HTTP requests
type GuestHandler struct {
	guests *services.GuestService
	logger *logrus.Logger
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guests *services.GuestService, logger *logrus.Logger) *GuestHandler {
	return &GuestHandler{guests: guests, logger: logger}
}

// List handles GET /api/v1/guests?search=&vip=
func (h *GuestHandler) List(c *gin.Context) {
	var filter models.GuestFilter
	if !bindQuery(c, &filter) {
		return
	}
	guests, err := h.guests.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guests": guests, "count": len(guests)})
}

// Stats handles GET /api/v1/guests/stats
func (h *GuestHandler) Stats(c *gin.Context) {
	stats, err := h.guests.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Get handles GET /api/v1/guests/:id
func (h *GuestHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	guest, err := h.guests.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// Create handles POST /api/v1/guests
func (h *GuestHandler) Create(c *gin.Context) {
	var req models.CreateGuestRequest
	if !bindJSON(c, &req) {
		return
	}
	guest, err := h.guests.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, guest)
}

// CreateBatch handles POST /api/v1/guests/batch
func (h *GuestHandler) CreateBatch(c *gin.Context) {
	reqs, ok := bindBatch[models.CreateGuestRequest](c)
	if !ok {
		return
	}
	created, err := h.guests.CreateMany(c.Request.Context(), reqs)
	respondBatch(c, h.logger, created, err)
}

// Update handles PUT /api/v1/guests/:id
func (h *GuestHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateGuestRequest
	if !bindJSON(c, &req) {
		return
	}
	guest, err := h.guests.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// Delete handles DELETE /api/v1/guests/:id
func (h *GuestHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.guests.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted", "id": id})
}
