package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/services"
)

// ReportHandler serves the dashboard, reports and activity feed
type ReportHandler struct {
	dashboard *services.DashboardService
	reports   *services.ReportService
	exports   *services.ExportService
	activity  *services.ActivityService
	logger    *logrus.Logger
}

// NewReportHandler creates a new report handler. exports may be nil when
// no blob store is configured.
func NewReportHandler(
	dashboard *services.DashboardService,
	reports *services.ReportService,
	exports *services.ExportService,
	activity *services.ActivityService,
	logger *logrus.Logger,
) *ReportHandler {
	return &ReportHandler{
		dashboard: dashboard,
		reports:   reports,
		exports:   exports,
		activity:  activity,
		logger:    logger,
	}
}

// Dashboard handles GET /api/v1/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Report handles GET /api/v1/reports?range=
func (h *ReportHandler) Report(c *gin.Context) {
	report, err := h.reports.Build(c.Request.Context(), models.ReportRange(c.Query("range")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export handles POST /api/v1/reports/export?range=&section=
func (h *ReportHandler) Export(c *gin.Context) {
	if h.exports == nil {
		respondError(c, h.logger, services.ErrExportDisabled)
		return
	}
	result, err := h.exports.Export(
		c.Request.Context(),
		models.ReportRange(c.Query("range")),
		services.ExportSection(c.Query("section")),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Activity handles GET /api/v1/activity?limit=
func (h *ReportHandler) Activity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "limit must be an integer",
			})
			return
		}
		limit = n
	}
	entries, err := h.activity.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}
