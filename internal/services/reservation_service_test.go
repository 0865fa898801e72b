package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/lifecycle"
	"github.com/staydesk/backoffice-api/internal/models"
)

func TestReservationService_Create(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	guest := f.guest(t, "Ada", "Lovelace", false)
	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantClean)

	checkIn := models.NewDate(2024, time.July, 1)
	checkOut := models.NewDate(2024, time.July, 4)
	valid := func() *models.CreateReservationRequest {
		in, out := checkIn, checkOut
		return &models.CreateReservationRequest{
			GuestID: guest.ID, RoomID: room.ID,
			CheckInDate: &in, CheckOutDate: &out,
			NumberOfGuests: 1, RoomRate: 150, Source: "phone",
		}
	}

	t.Run("Success With Derived Total", func(t *testing.T) {
		r, err := f.reservations.Create(ctx, valid())
		require.NoError(t, err)
		assert.Equal(t, 450.0, r.TotalAmount)
		assert.Equal(t, models.ReservationStatusPending, r.Status)
		assert.Equal(t, models.PaymentStatusPending, r.PaymentStatus)
		assert.Equal(t, "Ada Lovelace", r.GuestName)
		assert.Equal(t, "101", r.RoomNumber)
		assert.Equal(t, "standard", r.RoomType)
		assert.True(t, r.CreatedAt.Equal(fixedNow))
		assert.True(t, r.CheckInDate.Equal(checkIn))
	})

	t.Run("Check Out Not After Check In", func(t *testing.T) {
		req := valid()
		req.CheckOutDate = req.CheckInDate
		_, err := f.reservations.Create(ctx, req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "checkOutDate")
	})

	t.Run("Unknown Guest", func(t *testing.T) {
		req := valid()
		req.GuestID = 404
		_, err := f.reservations.Create(ctx, req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "guestId")
	})

	t.Run("Room Lookup Backend Failure Propagates", func(t *testing.T) {
		f.store.FailWith("get", database.CollectionRooms, errors.New("timeout"))
		defer f.store.Clear("get", database.CollectionRooms)
		_, err := f.reservations.Create(ctx, valid())
		assert.True(t, database.IsBackendFailure(err))
	})
}

func TestReservationService_DisplayFieldsForMissingReferences(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	guest := f.guest(t, "Ada", "Lovelace", false)
	room := f.room(t, "101", 1, models.RoomTypeSuite, models.RoomStatusVacantClean)
	r := f.reservation(t, guest.ID, room.ID, models.ReservationStatusConfirmed, models.PaymentStatusPaid)

	require.NoError(t, f.guests.Delete(ctx, guest.ID))
	require.NoError(t, f.rooms.Delete(ctx, room.ID))

	got, err := f.reservations.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Guest", got.GuestName)
	assert.Equal(t, "Unknown Room", got.RoomNumber)
	assert.Equal(t, "Unknown Type", got.RoomType)

	list, err := f.reservations.List(ctx, models.ReservationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Unknown Guest", list[0].GuestName)
}

func TestReservationService_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ReservationStatus
		action  lifecycle.Action
		changed bool
		want    models.ReservationStatus
	}{
		{"Check In From Confirmed", models.ReservationStatusConfirmed, lifecycle.ActionCheckIn, true, models.ReservationStatusCheckedIn},
		{"Check In From Pending Is Skipped", models.ReservationStatusPending, lifecycle.ActionCheckIn, false, models.ReservationStatusPending},
		{"Cancel From Confirmed", models.ReservationStatusConfirmed, lifecycle.ActionCancel, true, models.ReservationStatusCancelled},
		{"Cancel From Checked In Is Skipped", models.ReservationStatusCheckedIn, lifecycle.ActionCancel, false, models.ReservationStatusCheckedIn},
		{"Confirm From Pending", models.ReservationStatusPending, lifecycle.ActionConfirm, true, models.ReservationStatusConfirmed},
		{"Check Out From Checked In", models.ReservationStatusCheckedIn, lifecycle.ActionCheckOut, true, models.ReservationStatusCheckedOut},
		{"Check Out From Cancelled Is Skipped", models.ReservationStatusCancelled, lifecycle.ActionCheckOut, false, models.ReservationStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			ctx := context.Background()
			guest := f.guest(t, "Ada", "Lovelace", false)
			room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantClean)
			r := f.reservation(t, guest.ID, room.ID, tt.from, models.PaymentStatusPending)
			writes := f.store.Writes(database.CollectionReservations)

			res, err := f.reservations.Transition(ctx, r.ID, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, res.Changed)
			assert.Equal(t, tt.from, res.From)
			assert.Equal(t, tt.want, res.To)
			assert.Equal(t, tt.want, res.Reservation.Status)

			expectedWrites := writes
			if tt.changed {
				expectedWrites++
			}
			assert.Equal(t, expectedWrites, f.store.Writes(database.CollectionReservations))

			// Rooms are untouched unless coupling is enabled
			stored, err := f.rooms.Get(ctx, room.ID)
			require.NoError(t, err)
			assert.Equal(t, models.RoomStatusVacantClean, stored.Status)
		})
	}

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.reservations.CheckIn(context.Background(), 12)
		assert.True(t, database.IsNotFound(err))
	})

	t.Run("Unknown Action", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.reservations.Transition(context.Background(), 1, lifecycle.Action("teleport"))
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestReservationService_RoomCoupling(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	guest := f.guest(t, "Ada", "Lovelace", false)
	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantClean)
	r := f.reservation(t, guest.ID, room.ID, models.ReservationStatusConfirmed, models.PaymentStatusPaid)

	res, err := f.reservations.CheckIn(ctx, r.ID)
	require.NoError(t, err)
	require.True(t, res.Changed)

	stored, err := f.rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, stored.Status)

	res, err = f.reservations.CheckOut(ctx, r.ID)
	require.NoError(t, err)
	require.True(t, res.Changed)

	stored, err = f.rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusVacantDirty, stored.Status)

	g, err := f.guests.Get(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{r.ID}, g.StayHistory)

	t.Run("Coupling Failure Does Not Fail Transition", func(t *testing.T) {
		other := f.reservation(t, guest.ID, room.ID, models.ReservationStatusConfirmed, models.PaymentStatusPaid)
		f.store.FailWith("update", database.CollectionRooms, errors.New("deadlock"))
		defer f.store.Clear("update", database.CollectionRooms)

		res, err := f.reservations.CheckIn(ctx, other.ID)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, models.ReservationStatusCheckedIn, res.Reservation.Status)
	})
}

func TestReservationService_Update(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	guest := f.guest(t, "Ada", "Lovelace", false)
	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantClean)
	r := f.reservation(t, guest.ID, room.ID, models.ReservationStatusPending, models.PaymentStatusPending)

	t.Run("Shallow Merge", func(t *testing.T) {
		got, err := f.reservations.Update(ctx, r.ID, &models.UpdateReservationRequest{SpecialRequests: strPtr("late arrival")})
		require.NoError(t, err)
		assert.Equal(t, "late arrival", got.SpecialRequests)
		assert.Equal(t, r.TotalAmount, got.TotalAmount)
		assert.True(t, got.CheckOutDate.Equal(r.CheckOutDate))
	})

	t.Run("Check Out Moved Before Stored Check In", func(t *testing.T) {
		early := models.NewDate(2024, time.June, 10)
		_, err := f.reservations.Update(ctx, r.ID, &models.UpdateReservationRequest{CheckOutDate: &early})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "checkOutDate")
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := f.reservations.Update(ctx, 77, &models.UpdateReservationRequest{Status: strPtr("confirmed")})
		assert.True(t, database.IsNotFound(err))
	})
}

func TestReservationService_ListFilters(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ada := f.guest(t, "Ada", "Lovelace", false)
	grace := f.guest(t, "Grace", "Hopper", false)
	r101 := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantClean)
	r204 := f.room(t, "204", 2, models.RoomTypeDeluxe, models.RoomStatusVacantClean)
	f.reservation(t, ada.ID, r101.ID, models.ReservationStatusConfirmed, models.PaymentStatusPaid)
	f.reservation(t, grace.ID, r204.ID, models.ReservationStatusPending, models.PaymentStatusPending)
	f.reservation(t, grace.ID, r101.ID, models.ReservationStatusConfirmed, models.PaymentStatusPending)

	tests := []struct {
		name   string
		filter models.ReservationFilter
		want   int
	}{
		{"All", models.ReservationFilter{Status: "all"}, 3},
		{"Guest Name", models.ReservationFilter{Search: "grace"}, 2},
		{"Room Number", models.ReservationFilter{Search: "204"}, 1},
		{"Status", models.ReservationFilter{Status: "confirmed"}, 2},
		{"Search And Status", models.ReservationFilter{Search: "hopper", Status: "confirmed"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.reservations.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	t.Run("Stats", func(t *testing.T) {
		stats, err := f.reservations.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 2, stats.Confirmed)
		assert.Equal(t, 1, stats.Pending)
	})
}

func TestReservationService_MarkOverduePayments(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	guest := f.guest(t, "Ada", "Lovelace", false)
	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantClean)

	stay := func(status, payment string, checkOut models.Date) int64 {
		in := checkOut.AddDate(0, 0, -2)
		checkIn := models.DateOf(in)
		r, err := f.reservations.Create(ctx, &models.CreateReservationRequest{
			GuestID: guest.ID, RoomID: room.ID,
			CheckInDate: &checkIn, CheckOutDate: &checkOut,
			NumberOfGuests: 1, RoomRate: 100, Source: "email",
			Status: status, PaymentStatus: payment,
		})
		require.NoError(t, err)
		return r.ID
	}

	past := models.NewDate(2024, time.June, 10)
	today := models.NewDate(2024, time.June, 15)
	overdue := stay("checked-out", "pending", past)
	paid := stay("checked-out", "paid", past)
	cancelled := stay("cancelled", "pending", past)
	current := stay("checked-in", "pending", today)

	count, err := f.reservations.MarkOverduePayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expect := map[int64]models.PaymentStatus{
		overdue:   models.PaymentStatusOverdue,
		paid:      models.PaymentStatusPaid,
		cancelled: models.PaymentStatusPending,
		current:   models.PaymentStatusPending,
	}
	for id, want := range expect {
		got, err := f.reservations.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.PaymentStatus, "reservation %d", id)
	}
}
