package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/staydesk/backoffice-api/internal/lifecycle"
)

// Router groups every handler mounted under /api/v1
type Router struct {
	Guests       *GuestHandler
	Rooms        *RoomHandler
	Reservations *ReservationHandler
	Housekeeping *HousekeepingHandler
	Reports      *ReportHandler
	Admin        *AdminHandler
}

// Register mounts all routes on v1
func (r *Router) Register(v1 *gin.RouterGroup) {
	guests := v1.Group("/guests")
	{
		guests.GET("", r.Guests.List)
		guests.GET("/stats", r.Guests.Stats)
		guests.POST("", r.Guests.Create)
		guests.POST("/batch", r.Guests.CreateBatch)
		guests.GET("/:id", r.Guests.Get)
		guests.PUT("/:id", r.Guests.Update)
		guests.DELETE("/:id", r.Guests.Delete)
	}

	rooms := v1.Group("/rooms")
	{
		rooms.GET("", r.Rooms.List)
		rooms.GET("/stats", r.Rooms.Stats)
		rooms.GET("/by-floor", r.Rooms.ByFloor)
		rooms.POST("", r.Rooms.Create)
		rooms.POST("/batch", r.Rooms.CreateBatch)
		rooms.GET("/:id", r.Rooms.Get)
		rooms.PUT("/:id", r.Rooms.Update)
		rooms.DELETE("/:id", r.Rooms.Delete)
		rooms.POST("/:id/advance-status", r.Rooms.AdvanceStatus)
	}

	reservations := v1.Group("/reservations")
	{
		reservations.GET("", r.Reservations.List)
		reservations.GET("/stats", r.Reservations.Stats)
		reservations.POST("", r.Reservations.Create)
		reservations.POST("/batch", r.Reservations.CreateBatch)
		reservations.GET("/:id", r.Reservations.Get)
		reservations.PUT("/:id", r.Reservations.Update)
		reservations.DELETE("/:id", r.Reservations.Delete)
		reservations.POST("/:id/confirm", r.Reservations.Transition(lifecycle.ActionConfirm))
		reservations.POST("/:id/check-in", r.Reservations.Transition(lifecycle.ActionCheckIn))
		reservations.POST("/:id/check-out", r.Reservations.Transition(lifecycle.ActionCheckOut))
		reservations.POST("/:id/cancel", r.Reservations.Transition(lifecycle.ActionCancel))
	}

	tasks := v1.Group("/housekeeping-tasks")
	{
		tasks.GET("", r.Housekeeping.List)
		tasks.GET("/stats", r.Housekeeping.Stats)
		tasks.POST("", r.Housekeeping.Create)
		tasks.POST("/batch", r.Housekeeping.CreateBatch)
		tasks.GET("/:id", r.Housekeeping.Get)
		tasks.PUT("/:id", r.Housekeeping.Update)
		tasks.DELETE("/:id", r.Housekeeping.Delete)
		tasks.POST("/:id/toggle-status", r.Housekeeping.ToggleStatus)
	}

	v1.GET("/dashboard", r.Reports.Dashboard)
	v1.GET("/reports", r.Reports.Report)
	v1.POST("/reports/export", r.Reports.Export)
	v1.GET("/activity", r.Reports.Activity)

	if r.Admin != nil {
		jobs := v1.Group("/admin/jobs")
		{
			jobs.POST("/mark-overdue", r.Admin.RunMarkOverdue)
			jobs.POST("/export-report", r.Admin.RunExport)
			jobs.GET("/status", r.Admin.JobStatus)
		}
	}
}
