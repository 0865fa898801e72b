package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/services"
)

// fixtureFile is the YAML layout. Reservations and tasks refer to guests by
// email and rooms by number so files stay readable without ids.
type fixtureFile struct {
	Rooms        []models.CreateRoomRequest  `yaml:"rooms"`
	Guests       []models.CreateGuestRequest `yaml:"guests"`
	Reservations []reservationFixture        `yaml:"reservations"`
	Tasks        []taskFixture               `yaml:"tasks"`
}

type reservationFixture struct {
	Guest string `yaml:"guest"`
	Room  string `yaml:"room"`
	// Either an absolute YYYY-MM-DD date or a day offset from today
	CheckIn         string  `yaml:"checkIn"`
	StartsIn        int     `yaml:"startsIn"`
	Nights          int     `yaml:"nights"`
	NumberOfGuests  int     `yaml:"numberOfGuests"`
	RoomRate        float64 `yaml:"roomRate"`
	Status          string  `yaml:"status"`
	PaymentStatus   string  `yaml:"paymentStatus"`
	Source          string  `yaml:"source"`
	SpecialRequests string  `yaml:"specialRequests"`
}

type taskFixture struct {
	Room          string `yaml:"room"`
	AssignedTo    string `yaml:"assignedTo"`
	TaskType      string `yaml:"taskType"`
	Priority      string `yaml:"priority"`
	Status        string `yaml:"status"`
	EstimatedTime int    `yaml:"estimatedTime"`
	Notes         string `yaml:"notes"`
}

// seedCounts reports how many records of each kind were created
type seedCounts struct {
	Rooms        int
	Guests       int
	Reservations int
	Tasks        int
}

func (c seedCounts) String() string {
	return fmt.Sprintf("%d rooms, %d guests, %d reservations, %d tasks", c.Rooms, c.Guests, c.Reservations, c.Tasks)
}

func parseFixtures(r io.Reader) (*fixtureFile, error) {
	var f fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

// seeder creates fixtures through the services so every record passes the
// same validation as an API request
type seeder struct {
	rooms        *services.RoomService
	guests       *services.GuestService
	reservations *services.ReservationService
	tasks        *services.HousekeepingService
	today        time.Time
}

func (s *seeder) apply(ctx context.Context, f *fixtureFile) (seedCounts, error) {
	var counts seedCounts
	roomIDs := make(map[string]int64, len(f.Rooms))
	guestIDs := make(map[string]int64, len(f.Guests))

	for i := range f.Rooms {
		room, err := s.rooms.Create(ctx, &f.Rooms[i])
		if err != nil {
			return counts, fmt.Errorf("room %q: %w", f.Rooms[i].Number, err)
		}
		roomIDs[room.Number] = room.ID
		counts.Rooms++
	}

	for i := range f.Guests {
		guest, err := s.guests.Create(ctx, &f.Guests[i])
		if err != nil {
			return counts, fmt.Errorf("guest %q: %w", f.Guests[i].Email, err)
		}
		guestIDs[strings.ToLower(guest.Email)] = guest.ID
		counts.Guests++
	}

	for i, fx := range f.Reservations {
		req, err := s.reservationRequest(fx, roomIDs, guestIDs)
		if err != nil {
			return counts, fmt.Errorf("reservation %d: %w", i+1, err)
		}
		if _, err := s.reservations.Create(ctx, req); err != nil {
			return counts, fmt.Errorf("reservation %d: %w", i+1, err)
		}
		counts.Reservations++
	}

	for i, fx := range f.Tasks {
		roomID, ok := roomIDs[fx.Room]
		if !ok {
			return counts, fmt.Errorf("task %d: unknown room %q", i+1, fx.Room)
		}
		_, err := s.tasks.Create(ctx, &models.CreateTaskRequest{
			RoomID:        roomID,
			AssignedTo:    fx.AssignedTo,
			TaskType:      fx.TaskType,
			Priority:      fx.Priority,
			Status:        fx.Status,
			EstimatedTime: fx.EstimatedTime,
			Notes:         fx.Notes,
		})
		if err != nil {
			return counts, fmt.Errorf("task %d: %w", i+1, err)
		}
		counts.Tasks++
	}

	return counts, nil
}

func (s *seeder) reservationRequest(fx reservationFixture, roomIDs, guestIDs map[string]int64) (*models.CreateReservationRequest, error) {
	roomID, ok := roomIDs[fx.Room]
	if !ok {
		return nil, fmt.Errorf("unknown room %q", fx.Room)
	}
	guestID, ok := guestIDs[strings.ToLower(fx.Guest)]
	if !ok {
		return nil, fmt.Errorf("unknown guest %q", fx.Guest)
	}

	checkIn := models.DateOf(s.today.AddDate(0, 0, fx.StartsIn))
	if fx.CheckIn != "" {
		d, err := models.ParseDate(fx.CheckIn)
		if err != nil {
			return nil, err
		}
		checkIn = d
	}
	nights := fx.Nights
	if nights <= 0 {
		nights = 1
	}
	checkOut := models.DateOf(checkIn.AddDate(0, 0, nights))

	guests := fx.NumberOfGuests
	if guests <= 0 {
		guests = 1
	}
	return &models.CreateReservationRequest{
		GuestID:         guestID,
		RoomID:          roomID,
		CheckInDate:     &checkIn,
		CheckOutDate:    &checkOut,
		NumberOfGuests:  guests,
		RoomRate:        fx.RoomRate,
		Status:          fx.Status,
		PaymentStatus:   fx.PaymentStatus,
		Source:          fx.Source,
		SpecialRequests: fx.SpecialRequests,
	}, nil
}
