package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/testutil"
)

func TestSummarize(t *testing.T) {
	today := models.DateOf(fixedNow)
	tomorrow := models.DateOf(fixedNow.AddDate(0, 0, 1))
	lastMonth := fixedNow.AddDate(0, -1, 0)

	rooms := []models.Room{
		{ID: 1, Status: models.RoomStatusOccupied},
		{ID: 2, Status: models.RoomStatusOccupied},
		{ID: 3, Status: models.RoomStatusVacantClean},
	}
	guests := []models.Guest{{ID: 1, VIPStatus: true}, {ID: 2}, {ID: 3, VIPStatus: true}}

	var reservations []models.Reservation
	for i := 1; i <= 7; i++ {
		reservations = append(reservations, models.Reservation{
			ID:            int64(i),
			CheckInDate:   tomorrow,
			Status:        models.ReservationStatusConfirmed,
			PaymentStatus: models.PaymentStatusPending,
			CreatedAt:     fixedNow,
		})
	}
	reservations[0].CheckInDate = today
	reservations[1].CheckInDate = today
	reservations[1].Status = models.ReservationStatusPending
	reservations[2].PaymentStatus = models.PaymentStatusPaid
	reservations[2].TotalAmount = 300.5
	reservations[3].PaymentStatus = models.PaymentStatusPaid
	reservations[3].TotalAmount = 1000
	reservations[3].CreatedAt = lastMonth

	tasks := []models.HousekeepingTask{
		{ID: 1, Priority: models.TaskPriorityLow, Status: models.TaskStatusPending},
		{ID: 2, Priority: models.TaskPriorityUrgent, Status: models.TaskStatusPending},
		{ID: 3, Priority: models.TaskPriorityHigh, Status: models.TaskStatusCompleted},
		{ID: 4, Priority: models.TaskPriorityHigh, Status: models.TaskStatusInProgress},
		{ID: 5, Priority: models.TaskPriorityUrgent, Status: models.TaskStatusPending},
		{ID: 6, Priority: models.TaskPriorityUrgent, Status: models.TaskStatusPending},
	}

	s := Summarize(reservations, rooms, guests, tasks, fixedNow)

	assert.Equal(t, 66.7, s.OccupancyRate)
	assert.Equal(t, 2, s.OccupiedRooms)
	assert.Equal(t, 3, s.TotalRooms)
	assert.Equal(t, 2, s.TodayCheckIns)
	assert.Equal(t, 300.5, s.MonthlyRevenue)
	assert.Equal(t, 4, s.PendingTasks)
	assert.Equal(t, 2, s.VIPGuests)
	assert.Equal(t, 3, s.TotalGuests)

	require.Len(t, s.RecentReservations, 5)
	assert.Equal(t, int64(1), s.RecentReservations[0].ID)
	assert.Equal(t, int64(3), s.RecentReservations[1].ID, "pending reservations are skipped")

	require.Len(t, s.PriorityTasks, 4)
	assert.Equal(t, []int64{2, 3, 4, 5}, []int64{s.PriorityTasks[0].ID, s.PriorityTasks[1].ID, s.PriorityTasks[2].ID, s.PriorityTasks[3].ID})
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, nil, nil, fixedNow)
	assert.Equal(t, 0.0, s.OccupancyRate)
	assert.NotNil(t, s.RecentReservations)
	assert.NotNil(t, s.PriorityTasks)
}

func TestDashboardService_Summary(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	guest := f.guest(t, "Ada", "Lovelace", true)
	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusOccupied)
	f.reservation(t, guest.ID, room.ID, models.ReservationStatusCheckedIn, models.PaymentStatusPaid)

	svc := NewDashboardService(f.deps)

	t.Run("Success", func(t *testing.T) {
		s, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 100.0, s.OccupancyRate)
		assert.Equal(t, 1, s.TodayCheckIns)
		assert.Equal(t, 300.0, s.MonthlyRevenue)
		require.Len(t, s.RecentReservations, 1)
		assert.Equal(t, "Ada Lovelace", s.RecentReservations[0].GuestName)
	})

	t.Run("Any Failed List Fails The Load", func(t *testing.T) {
		f.store.FailWith("list", database.CollectionTasks, errors.New("boom"))
		defer f.store.Clear("list", database.CollectionTasks)

		s, err := svc.Summary(ctx)
		assert.Nil(t, s)
		assert.True(t, database.IsBackendFailure(err))
	})
}

func TestLoadSnapshot_SkipsTasks(t *testing.T) {
	store := testutil.NewMemStore()
	_, err := loadSnapshot(context.Background(), store, false)
	require.NoError(t, err)
	assert.NotContains(t, store.Calls, "list:"+database.CollectionTasks)
	assert.Len(t, store.Calls, 3)
}
