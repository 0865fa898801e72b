package services

import (
	"context"
	"time"

	"github.com/staydesk/backoffice-api/internal/models"
)

const (
	recentReservationLimit = 5
	priorityTaskLimit      = 4
)

// DashboardService builds the landing page summary
type DashboardService struct {
	Deps
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(deps Deps) *DashboardService {
	return &DashboardService{Deps: deps.withDefaults()}
}

// Summary loads all four collections and aggregates them
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	snap, err := loadSnapshot(ctx, s.Store, true)
	if err != nil {
		return nil, err
	}
	summary := Summarize(snap.Reservations, snap.Rooms, snap.Guests, snap.Tasks, s.Clock())
	return &summary, nil
}

// Summarize computes the dashboard figures as of now
func Summarize(reservations []models.Reservation, rooms []models.Room, guests []models.Guest, tasks []models.HousekeepingTask, now time.Time) models.DashboardSummary {
	today := models.DateOf(now)
	summary := models.DashboardSummary{
		TotalRooms:         len(rooms),
		TotalGuests:        len(guests),
		RecentReservations: []models.Reservation{},
		PriorityTasks:      []models.HousekeepingTask{},
	}

	for _, r := range rooms {
		if r.Status == models.RoomStatusOccupied {
			summary.OccupiedRooms++
		}
	}
	summary.OccupancyRate = percent(summary.OccupiedRooms, len(rooms))

	monthStart := startOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, 0)
	var revenue float64
	for _, r := range reservations {
		if r.CheckInDate.Equal(today) {
			summary.TodayCheckIns++
		}
		if r.PaymentStatus == models.PaymentStatusPaid && within(r.CreatedAt, monthStart, monthEnd) {
			revenue += r.TotalAmount
		}
		if len(summary.RecentReservations) < recentReservationLimit &&
			(r.Status == models.ReservationStatusConfirmed || r.Status == models.ReservationStatusCheckedIn) {
			summary.RecentReservations = append(summary.RecentReservations, r)
		}
	}
	summary.MonthlyRevenue = money(revenue)

	for _, t := range tasks {
		if t.Status == models.TaskStatusPending {
			summary.PendingTasks++
		}
		if len(summary.PriorityTasks) < priorityTaskLimit &&
			(t.Priority == models.TaskPriorityUrgent || t.Priority == models.TaskPriorityHigh) {
			summary.PriorityTasks = append(summary.PriorityTasks, t)
		}
	}

	for _, g := range guests {
		if g.VIPStatus {
			summary.VIPGuests++
		}
	}
	return summary
}
