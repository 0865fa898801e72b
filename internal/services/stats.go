package services

import (
	"math"
	"sort"

	"github.com/staydesk/backoffice-api/internal/models"
)

// percent returns part/total as a percentage rounded to one decimal
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// ComputeRoomStats counts rooms per status and the occupancy rate
func ComputeRoomStats(rooms []models.Room) models.RoomStats {
	stats := models.RoomStats{
		Total:    len(rooms),
		ByStatus: make(map[models.RoomStatus]int, len(models.RoomStatuses)),
	}
	for _, s := range models.RoomStatuses {
		stats.ByStatus[s] = 0
	}
	for _, r := range rooms {
		stats.ByStatus[r.Status]++
	}
	stats.OccupancyRate = percent(stats.ByStatus[models.RoomStatusOccupied], len(rooms))
	return stats
}

// GroupRoomsByFloor groups rooms per floor, highest floor first, keeping the
// input order within a floor
func GroupRoomsByFloor(rooms []models.Room) []models.FloorGroup {
	index := make(map[int]int)
	var groups []models.FloorGroup
	for _, r := range rooms {
		i, ok := index[r.Floor]
		if !ok {
			i = len(groups)
			index[r.Floor] = i
			groups = append(groups, models.FloorGroup{Floor: r.Floor})
		}
		groups[i].Rooms = append(groups[i].Rooms, r)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Floor > groups[b].Floor })
	if groups == nil {
		groups = []models.FloorGroup{}
	}
	return groups
}

// ComputeGuestStats counts vip, regular and returning guests
func ComputeGuestStats(guests []models.Guest) models.GuestStats {
	stats := models.GuestStats{Total: len(guests)}
	for _, g := range guests {
		if g.VIPStatus {
			stats.VIP++
		} else {
			stats.Regular++
		}
		if len(g.StayHistory) > 0 {
			stats.WithStays++
		}
	}
	return stats
}

// ComputeTaskStats counts tasks per status; Urgent excludes completed work
func ComputeTaskStats(tasks []models.HousekeepingTask) models.TaskStats {
	stats := models.TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusPending:
			stats.Pending++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusCompleted:
			stats.Completed++
		}
		if t.Priority == models.TaskPriorityUrgent && t.Status != models.TaskStatusCompleted {
			stats.Urgent++
		}
	}
	return stats
}

// ComputeReservationStats counts reservations per status
func ComputeReservationStats(reservations []models.Reservation) models.ReservationStats {
	stats := models.ReservationStats{Total: len(reservations)}
	for _, r := range reservations {
		switch r.Status {
		case models.ReservationStatusPending:
			stats.Pending++
		case models.ReservationStatusConfirmed:
			stats.Confirmed++
		case models.ReservationStatusCheckedIn:
			stats.CheckedIn++
		case models.ReservationStatusCheckedOut:
			stats.CheckedOut++
		case models.ReservationStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}
