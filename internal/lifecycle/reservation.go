package lifecycle

import "github.com/staydesk/backoffice-api/internal/models"

// Action is a guarded reservation status change
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCheckIn  Action = "check-in"
	ActionCheckOut Action = "check-out"
	ActionCancel   Action = "cancel"
)

type guard struct {
	from models.ReservationStatus
	to   models.ReservationStatus
}

var reservationActions = map[Action]guard{
	ActionConfirm:  {from: models.ReservationStatusPending, to: models.ReservationStatusConfirmed},
	ActionCheckIn:  {from: models.ReservationStatusConfirmed, to: models.ReservationStatusCheckedIn},
	ActionCheckOut: {from: models.ReservationStatusCheckedIn, to: models.ReservationStatusCheckedOut},
	ActionCancel:   {from: models.ReservationStatusConfirmed, to: models.ReservationStatusCancelled},
}

// IsValidAction reports whether a is a known reservation action
func IsValidAction(a Action) bool {
	_, ok := reservationActions[a]
	return ok
}

// ApplyReservationAction returns the target status and whether the guard
// allows it. A rejected action yields the current status and false.
func ApplyReservationAction(current models.ReservationStatus, a Action) (models.ReservationStatus, bool) {
	g, ok := reservationActions[a]
	if !ok || current != g.from {
		return current, false
	}
	return g.to, true
}

// CanCheckIn mirrors the check-in button visibility
func CanCheckIn(status models.ReservationStatus) bool {
	_, ok := ApplyReservationAction(status, ActionCheckIn)
	return ok
}

// CanCancel mirrors the cancel button visibility
func CanCancel(status models.ReservationStatus) bool {
	_, ok := ApplyReservationAction(status, ActionCancel)
	return ok
}
