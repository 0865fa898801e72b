package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/services"
)

// HousekeepingHandler handles housekeeping task HTTP requests
type HousekeepingHandler struct {
	tasks  *services.HousekeepingService
	logger *logrus.Logger
}

// NewHousekeepingHandler creates a new housekeeping handler
func NewHousekeepingHandler(tasks *services.HousekeepingService, logger *logrus.Logger) *HousekeepingHandler {
	return &HousekeepingHandler{tasks: tasks, logger: logger}
}

// List handles GET /api/v1/housekeeping-tasks?search=&status=&priority=
func (h *HousekeepingHandler) List(c *gin.Context) {
	var filter models.TaskFilter
	if !bindQuery(c, &filter) {
		return
	}
	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "count": len(tasks)})
}

// Stats handles GET /api/v1/housekeeping-tasks/stats
func (h *HousekeepingHandler) Stats(c *gin.Context) {
	stats, err := h.tasks.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Get handles GET /api/v1/housekeeping-tasks/:id
func (h *HousekeepingHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Create handles POST /api/v1/housekeeping-tasks
func (h *HousekeepingHandler) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// CreateBatch handles POST /api/v1/housekeeping-tasks/batch
func (h *HousekeepingHandler) CreateBatch(c *gin.Context) {
	reqs, ok := bindBatch[models.CreateTaskRequest](c)
	if !ok {
		return
	}
	created, err := h.tasks.CreateMany(c.Request.Context(), reqs)
	respondBatch(c, h.logger, created, err)
}

// Update handles PUT /api/v1/housekeeping-tasks/:id
func (h *HousekeepingHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/v1/housekeeping-tasks/:id
func (h *HousekeepingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted", "id": id})
}

// ToggleStatus handles POST /api/v1/housekeeping-tasks/:id/toggle-status
func (h *HousekeepingHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	task, err := h.tasks.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
