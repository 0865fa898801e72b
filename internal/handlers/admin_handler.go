package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/services"
)

// AdminHandler triggers scheduled jobs on demand
type AdminHandler struct {
	cron   *services.CronService
	logger *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cron *services.CronService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{cron: cron, logger: logger}
}

// RunMarkOverdue handles POST /api/v1/admin/jobs/mark-overdue
func (h *AdminHandler) RunMarkOverdue(c *gin.Context) {
	h.logger.Info("[MANUAL] Running mark overdue payments now")
	count, err := h.cron.RunMarkOverdueNow(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": services.JobMarkOverdue, "affected": count})
}

// RunExport handles POST /api/v1/admin/jobs/export-report
func (h *AdminHandler) RunExport(c *gin.Context) {
	h.logger.Info("[MANUAL] Running report export now")
	results, err := h.cron.RunExportNow(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": services.JobExportReport, "exports": results})
}

// JobStatus handles GET /api/v1/admin/jobs/status
func (h *AdminHandler) JobStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.cron.GetJobStatus())
}
