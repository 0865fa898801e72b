package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/utils"
)

func TestActivityService_RecordsTransitions(t *testing.T) {
	f := newFixture(t, false)
	activity := NewActivityService(f.deps)
	f.deps.Events.Subscribe(activity)

	ctx := utils.WithClient(context.Background(), utils.ClientInfo{
		RequestID: "req-1",
		IP:        "203.0.113.7",
		Device:    utils.DeviceInfo{DeviceType: "desktop", Platform: "mac", Browser: "Safari"},
	})

	guest := f.guest(t, "Ada", "Lovelace", false)
	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantDirty)
	r := f.reservation(t, guest.ID, room.ID, models.ReservationStatusConfirmed, models.PaymentStatusPaid)

	assert.Equal(t, 0, f.store.Count(database.CollectionActivity), "plain creates are not logged")

	_, err := f.reservations.CheckIn(ctx, r.ID)
	require.NoError(t, err)
	_, err = f.rooms.AdvanceStatus(context.Background(), room.ID)
	require.NoError(t, err)

	// Skipped transitions leave no trace
	_, err = f.reservations.Cancel(ctx, r.ID)
	require.NoError(t, err)

	entries, err := activity.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	roomEntry := entries[0]
	assert.Equal(t, database.CollectionRooms, roomEntry.Collection)
	assert.Equal(t, "advance-status", roomEntry.Action)
	assert.Equal(t, "vacant-dirty", roomEntry.FromStatus)
	assert.Equal(t, "vacant-clean", roomEntry.ToStatus)
	assert.Equal(t, "system", roomEntry.DeviceType)

	resEntry := entries[1]
	assert.Equal(t, database.CollectionReservations, resEntry.Collection)
	assert.Equal(t, r.ID, resEntry.RecordID)
	assert.Equal(t, "check-in", resEntry.Action)
	assert.Equal(t, "confirmed", resEntry.FromStatus)
	assert.Equal(t, "checked-in", resEntry.ToStatus)
	assert.Equal(t, "203.0.113.7", resEntry.ClientIP)
	assert.Equal(t, "mac", resEntry.Platform)
	assert.True(t, resEntry.OccurredAt.Equal(fixedNow))
}

func TestActivityService_FailureDoesNotFailWrite(t *testing.T) {
	f := newFixture(t, false)
	f.deps.Events.Subscribe(NewActivityService(f.deps))
	f.store.FailWith("create", database.CollectionActivity, errors.New("disk full"))

	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusOccupied)
	got, err := f.rooms.AdvanceStatus(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusVacantDirty, got.Status)
}

func TestActivityService_RecentLimit(t *testing.T) {
	f := newFixture(t, false)
	activity := NewActivityService(f.deps)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, activity.OnChange(ctx, ChangeEvent{
			Collection: database.CollectionTasks, Kind: ChangeTransition, RecordID: int64(i), Action: "toggle-status",
		}))
	}
	require.NoError(t, activity.OnChange(ctx, ChangeEvent{Collection: database.CollectionTasks, Kind: ChangeDeleted, RecordID: 9}))

	entries, err := activity.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].RecordID)
	assert.Equal(t, int64(2), entries[1].RecordID)

	f.store.FailWith("recent", database.CollectionActivity, errors.New("down"))
	_, err = activity.Recent(ctx, 5)
	assert.True(t, database.IsBackendFailure(err))
}
