package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/models"
)

func TestNextRoomStatus(t *testing.T) {
	tests := []struct {
		name    string
		current models.RoomStatus
		want    models.RoomStatus
	}{
		{"occupied goes dirty", models.RoomStatusOccupied, models.RoomStatusVacantDirty},
		{"dirty gets cleaned", models.RoomStatusVacantDirty, models.RoomStatusVacantClean},
		{"clean gets occupied", models.RoomStatusVacantClean, models.RoomStatusOccupied},
		{"out of order returns to service clean", models.RoomStatusOutOfOrder, models.RoomStatusVacantClean},
		{"unknown recovers to clean", models.RoomStatus("flooded"), models.RoomStatusVacantClean},
		{"empty recovers to clean", models.RoomStatus(""), models.RoomStatusVacantClean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRoomStatus(tt.current))
		})
	}
}

func TestNextRoomStatus_StaysInEnum(t *testing.T) {
	statuses := append([]models.RoomStatus{"bogus"}, models.RoomStatuses...)
	for _, s := range statuses {
		assert.True(t, NextRoomStatus(s).IsValid(), "next of %q", s)
	}
}

func TestAdvanceRoom_LastCleaned(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)

	t.Run("occupied to dirty keeps lastCleaned", func(t *testing.T) {
		tr := AdvanceRoom(models.Room{ID: 5, Status: models.RoomStatusOccupied, LastCleaned: &earlier}, now)
		assert.Equal(t, models.RoomStatusVacantDirty, tr.To)
		require.NotNil(t, tr.LastCleaned)
		assert.Equal(t, earlier, *tr.LastCleaned)
		_, ok := tr.Fields()["lastCleaned"]
		assert.True(t, ok)
	})

	t.Run("dirty to clean stamps now", func(t *testing.T) {
		tr := AdvanceRoom(models.Room{ID: 5, Status: models.RoomStatusVacantDirty, LastCleaned: &earlier}, now)
		assert.Equal(t, models.RoomStatusVacantClean, tr.To)
		require.NotNil(t, tr.LastCleaned)
		assert.Equal(t, now, *tr.LastCleaned)
	})

	t.Run("never cleaned room stays nil until cleaned", func(t *testing.T) {
		tr := AdvanceRoom(models.Room{ID: 1, Status: models.RoomStatusVacantClean}, now)
		assert.Equal(t, models.RoomStatusOccupied, tr.To)
		assert.Nil(t, tr.LastCleaned)
		assert.Equal(t, models.Fields{"status": "occupied"}, tr.Fields())
	})
}

func TestAdvanceRoom_FullCycle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	room := models.Room{Status: models.RoomStatusOccupied}
	seen := []models.RoomStatus{room.Status}
	for i := 0; i < 3; i++ {
		tr := AdvanceRoom(room, now)
		room.Status, room.LastCleaned = tr.To, tr.LastCleaned
		seen = append(seen, room.Status)
	}
	assert.Equal(t, []models.RoomStatus{
		models.RoomStatusOccupied,
		models.RoomStatusVacantDirty,
		models.RoomStatusVacantClean,
		models.RoomStatusOccupied,
	}, seen)
}
