package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/testutil"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testDeps(store database.RecordStore) Deps {
	logger := quietLogger()
	return Deps{
		Store:  store,
		Events: NewNotifier(logger),
		Logger: logger,
		Clock:  func() time.Time { return fixedNow },
	}
}

type fixture struct {
	store        *testutil.MemStore
	deps         Deps
	rooms        *RoomService
	guests       *GuestService
	reservations *ReservationService
	tasks        *HousekeepingService
}

func newFixture(t *testing.T, coupleRooms bool) *fixture {
	t.Helper()
	store := testutil.NewMemStore()
	deps := testDeps(store)
	rooms := NewRoomService(deps)
	guests := NewGuestService(deps)
	return &fixture{
		store:        store,
		deps:         deps,
		rooms:        rooms,
		guests:       guests,
		reservations: NewReservationService(deps, rooms, guests, coupleRooms),
		tasks:        NewHousekeepingService(deps, rooms),
	}
}

func (f *fixture) room(t *testing.T, number string, floor int, roomType models.RoomType, status models.RoomStatus) *models.Room {
	t.Helper()
	room, err := f.rooms.Create(context.Background(), &models.CreateRoomRequest{
		Number:       number,
		Type:         string(roomType),
		Floor:        floor,
		Status:       string(status),
		BaseRate:     120,
		MaxOccupancy: 2,
	})
	require.NoError(t, err)
	return room
}

func (f *fixture) guest(t *testing.T, first, last string, vip bool) *models.Guest {
	t.Helper()
	guest, err := f.guests.Create(context.Background(), &models.CreateGuestRequest{
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@example.com",
		Phone:     "+1 555 010 0101",
		VIPStatus: vip,
	})
	require.NoError(t, err)
	return guest
}

func (f *fixture) reservation(t *testing.T, guestID, roomID int64, status models.ReservationStatus, payment models.PaymentStatus) *models.Reservation {
	t.Helper()
	checkIn := models.NewDate(2024, time.June, 15)
	checkOut := models.NewDate(2024, time.June, 18)
	r, err := f.reservations.Create(context.Background(), &models.CreateReservationRequest{
		GuestID:        guestID,
		RoomID:         roomID,
		CheckInDate:    &checkIn,
		CheckOutDate:   &checkOut,
		NumberOfGuests: 2,
		RoomRate:       100,
		Status:         string(status),
		PaymentStatus:  string(payment),
		Source:         string(models.BookingSourceWebsite),
	})
	require.NoError(t, err)
	return r
}

func strPtr(s string) *string { return &s }
