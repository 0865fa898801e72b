package database

import (
	"fmt"
	"strings"
)

// Collection names understood by the record store
const (
	CollectionGuests       = "guests"
	CollectionRooms        = "rooms"
	CollectionReservations = "reservations"
	CollectionTasks        = "housekeeping_tasks"
	CollectionActivity     = "activity_log"
)

type column struct {
	field string // canonical camelCase name
	name  string // snake_case column
}

type collection struct {
	table   string
	columns []column
}

// collections maps canonical field names to storage columns. Nothing
// outside this package sees column names.
var collections = map[string]collection{
	CollectionGuests: {
		table: "guests",
		columns: []column{
			{"firstName", "first_name"},
			{"lastName", "last_name"},
			{"email", "email"},
			{"phone", "phone"},
			{"address", "address"},
			{"vipStatus", "vip_status"},
			{"createdAt", "created_at"},
			{"stayHistory", "stay_history"},
		},
	},
	CollectionRooms: {
		table: "rooms",
		columns: []column{
			{"number", "number"},
			{"type", "room_type"},
			{"floor", "floor"},
			{"status", "status"},
			{"baseRate", "base_rate"},
			{"maxOccupancy", "max_occupancy"},
			{"lastCleaned", "last_cleaned"},
		},
	},
	CollectionReservations: {
		table: "reservations",
		columns: []column{
			{"guestId", "guest_id"},
			{"roomId", "room_id"},
			{"checkInDate", "check_in_date"},
			{"checkOutDate", "check_out_date"},
			{"numberOfGuests", "number_of_guests"},
			{"roomRate", "room_rate"},
			{"totalAmount", "total_amount"},
			{"status", "status"},
			{"paymentStatus", "payment_status"},
			{"source", "source"},
			{"specialRequests", "special_requests"},
			{"createdAt", "created_at"},
		},
	},
	CollectionTasks: {
		table: "housekeeping_tasks",
		columns: []column{
			{"roomId", "room_id"},
			{"assignedTo", "assigned_to"},
			{"taskType", "task_type"},
			{"priority", "priority"},
			{"status", "status"},
			{"estimatedTime", "estimated_time"},
			{"completedAt", "completed_at"},
			{"notes", "notes"},
		},
	},
	CollectionActivity: {
		table: "activity_log",
		columns: []column{
			{"collection", "collection"},
			{"recordId", "record_id"},
			{"action", "action"},
			{"fromStatus", "from_status"},
			{"toStatus", "to_status"},
			{"clientIp", "client_ip"},
			{"deviceType", "device_type"},
			{"platform", "platform"},
			{"browser", "browser"},
			{"occurredAt", "occurred_at"},
		},
	},
}

func lookup(name string) (collection, error) {
	c, ok := collections[name]
	if !ok {
		return collection{}, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return c, nil
}

func (c collection) column(field string) (string, bool) {
	for _, col := range c.columns {
		if col.field == field {
			return col.name, true
		}
	}
	return "", false
}

// field maps a column back to its canonical name
func (c collection) field(name string) string {
	for _, col := range c.columns {
		if col.name == name {
			return col.field
		}
	}
	return name
}

func (c collection) selectList() string {
	names := make([]string, 0, len(c.columns)+1)
	names = append(names, "id")
	for _, col := range c.columns {
		names = append(names, col.name)
	}
	return strings.Join(names, ", ")
}

// Collections returns every known collection name
func Collections() []string {
	return []string{
		CollectionGuests,
		CollectionRooms,
		CollectionReservations,
		CollectionTasks,
		CollectionActivity,
	}
}
