package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staydesk/backoffice-api/internal/models"
)

func TestApplyReservationAction(t *testing.T) {
	all := []models.ReservationStatus{
		models.ReservationStatusPending,
		models.ReservationStatusConfirmed,
		models.ReservationStatusCheckedIn,
		models.ReservationStatusCheckedOut,
		models.ReservationStatusCancelled,
	}
	allowed := map[Action]models.ReservationStatus{
		ActionConfirm:  models.ReservationStatusPending,
		ActionCheckIn:  models.ReservationStatusConfirmed,
		ActionCheckOut: models.ReservationStatusCheckedIn,
		ActionCancel:   models.ReservationStatusConfirmed,
	}
	want := map[Action]models.ReservationStatus{
		ActionConfirm:  models.ReservationStatusConfirmed,
		ActionCheckIn:  models.ReservationStatusCheckedIn,
		ActionCheckOut: models.ReservationStatusCheckedOut,
		ActionCancel:   models.ReservationStatusCancelled,
	}

	for action, from := range allowed {
		for _, current := range all {
			t.Run(string(action)+" from "+string(current), func(t *testing.T) {
				next, ok := ApplyReservationAction(current, action)
				if current == from {
					assert.True(t, ok)
					assert.Equal(t, want[action], next)
					return
				}
				assert.False(t, ok)
				assert.Equal(t, current, next)
			})
		}
	}
}

func TestApplyReservationAction_UnknownAction(t *testing.T) {
	next, ok := ApplyReservationAction(models.ReservationStatusConfirmed, Action("upgrade"))
	assert.False(t, ok)
	assert.Equal(t, models.ReservationStatusConfirmed, next)
	assert.False(t, IsValidAction("upgrade"))
	assert.True(t, IsValidAction(ActionCheckIn))
}

func TestCancelThenCheckInIsNoop(t *testing.T) {
	status, ok := ApplyReservationAction(models.ReservationStatusConfirmed, ActionCancel)
	assert.True(t, ok)
	assert.Equal(t, models.ReservationStatusCancelled, status)

	status, ok = ApplyReservationAction(status, ActionCheckIn)
	assert.False(t, ok)
	assert.Equal(t, models.ReservationStatusCancelled, status)
}

func TestButtonVisibility(t *testing.T) {
	assert.True(t, CanCheckIn(models.ReservationStatusConfirmed))
	assert.True(t, CanCancel(models.ReservationStatusConfirmed))
	assert.False(t, CanCheckIn(models.ReservationStatusPending))
	assert.False(t, CanCancel(models.ReservationStatusCheckedIn))
}
