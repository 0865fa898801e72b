package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/services"
)

// RoomHandler handles room HTTP requests
type RoomHandler struct {
	rooms  *services.RoomService
	logger *logrus.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms *services.RoomService, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, logger: logger}
}

// List handles GET /api/v1/rooms?status=
func (h *RoomHandler) List(c *gin.Context) {
	var filter models.RoomFilter
	if !bindQuery(c, &filter) {
		return
	}
	rooms, err := h.rooms.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "count": len(rooms)})
}

// Stats handles GET /api/v1/rooms/stats
func (h *RoomHandler) Stats(c *gin.Context) {
	stats, err := h.rooms.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ByFloor handles GET /api/v1/rooms/by-floor?status=
func (h *RoomHandler) ByFloor(c *gin.Context) {
	var filter models.RoomFilter
	if !bindQuery(c, &filter) {
		return
	}
	floors, err := h.rooms.ByFloor(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"floors": floors})
}

// Get handles GET /api/v1/rooms/:id
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := h.rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req models.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := h.rooms.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// CreateBatch handles POST /api/v1/rooms/batch
func (h *RoomHandler) CreateBatch(c *gin.Context) {
	reqs, ok := bindBatch[models.CreateRoomRequest](c)
	if !ok {
		return
	}
	created, err := h.rooms.CreateMany(c.Request.Context(), reqs)
	respondBatch(c, h.logger, created, err)
}

// Update handles PUT /api/v1/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := h.rooms.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /api/v1/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted", "id": id})
}

// AdvanceStatus handles POST /api/v1/rooms/:id/advance-status
func (h *RoomHandler) AdvanceStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := h.rooms.AdvanceStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
