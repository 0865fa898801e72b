// Package lifecycle holds the status machines for rooms, reservations and
// housekeeping tasks. Everything here is pure: callers supply the clock.
package lifecycle

import (
	"time"

	"github.com/staydesk/backoffice-api/internal/models"
)

var roomCycle = map[models.RoomStatus]models.RoomStatus{
	models.RoomStatusOccupied:    models.RoomStatusVacantDirty,
	models.RoomStatusVacantDirty: models.RoomStatusVacantClean,
	models.RoomStatusVacantClean: models.RoomStatusOccupied,
	models.RoomStatusOutOfOrder:  models.RoomStatusVacantClean,
}

// NextRoomStatus returns the status a room moves to when staff advance it.
// Unknown statuses recover to vacant-clean.
func NextRoomStatus(current models.RoomStatus) models.RoomStatus {
	if next, ok := roomCycle[current]; ok {
		return next
	}
	return models.RoomStatusVacantClean
}

// RoomTransition is the patch produced by advancing a room
type RoomTransition struct {
	From        models.RoomStatus
	To          models.RoomStatus
	LastCleaned *time.Time
}

// Fields renders the transition as a partial update
func (t RoomTransition) Fields() models.Fields {
	f := models.Fields{"status": string(t.To)}
	if t.LastCleaned != nil {
		f["lastCleaned"] = *t.LastCleaned
	}
	return f
}

// AdvanceRoom computes the next status. lastCleaned is stamped only on
// entry into vacant-clean; otherwise the previous value is kept.
func AdvanceRoom(room models.Room, now time.Time) RoomTransition {
	next := NextRoomStatus(room.Status)
	t := RoomTransition{From: room.Status, To: next, LastCleaned: room.LastCleaned}
	if next == models.RoomStatusVacantClean {
		stamp := now
		t.LastCleaned = &stamp
	}
	return t
}
