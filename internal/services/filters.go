package services

import (
	"strings"

	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/pkg/validator"
)

// phones are stored sanitized, so search terms are compared the same way
var searchPhones = validator.NewPhoneValidator()

// "all" and the empty string both disable a filter
func matchesOption(filter, value string) bool {
	return filter == "" || filter == "all" || filter == value
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

// FilterRooms keeps rooms with the requested status
func FilterRooms(rooms []models.Room, f models.RoomFilter) []models.Room {
	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if matchesOption(f.Status, string(r.Status)) {
			out = append(out, r)
		}
	}
	return out
}

// FilterReservations searches guest name and room number, then filters by status
func FilterReservations(reservations []models.Reservation, f models.ReservationFilter) []models.Reservation {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if term != "" && !containsFold(r.GuestName, term) && !containsFold(r.RoomNumber, term) {
			continue
		}
		if !matchesOption(f.Status, string(r.Status)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterGuests searches names and email case-insensitively and phone
// verbatim, then filters by vip, regular or all
func FilterGuests(guests []models.Guest, f models.GuestFilter) []models.Guest {
	raw := strings.TrimSpace(f.Search)
	term := strings.ToLower(raw)
	phone := searchPhones.Sanitize(raw)
	out := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		if term != "" &&
			!containsFold(g.FirstName, term) &&
			!containsFold(g.LastName, term) &&
			!containsFold(g.Email, term) &&
			(phone == "" || !strings.Contains(g.Phone, phone)) {
			continue
		}
		switch f.VIP {
		case "vip":
			if !g.VIPStatus {
				continue
			}
		case "regular":
			if g.VIPStatus {
				continue
			}
		}
		out = append(out, g)
	}
	return out
}

// FilterTasks searches room number, assignee and task type, then filters by
// status and priority
func FilterTasks(tasks []models.HousekeepingTask, f models.TaskFilter) []models.HousekeepingTask {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.HousekeepingTask, 0, len(tasks))
	for _, t := range tasks {
		if term != "" &&
			!containsFold(t.RoomNumber, term) &&
			!containsFold(t.AssignedTo, term) &&
			!containsFold(string(t.TaskType), term) {
			continue
		}
		if !matchesOption(f.Status, string(t.Status)) || !matchesOption(f.Priority, string(t.Priority)) {
			continue
		}
		out = append(out, t)
	}
	return out
}
