package services

import (
	"github.com/staydesk/backoffice-api/internal/lifecycle"
	"github.com/staydesk/backoffice-api/internal/models"
)

// directory resolves foreign keys into display fields
type directory struct {
	guests map[int64]models.Guest
	rooms  map[int64]models.Room
}

func newDirectory(guests []models.Guest, rooms []models.Room) directory {
	d := directory{
		guests: make(map[int64]models.Guest, len(guests)),
		rooms:  make(map[int64]models.Room, len(rooms)),
	}
	for _, g := range guests {
		d.guests[g.ID] = g
	}
	for _, r := range rooms {
		d.rooms[r.ID] = r
	}
	return d
}

func (d directory) reservation(r *models.Reservation) {
	r.GuestName = unknownGuest
	if g, ok := d.guests[r.GuestID]; ok {
		r.GuestName = g.FullName()
	}
	r.RoomNumber, r.RoomType = d.room(r.RoomID)
	r.CanCheckIn = lifecycle.CanCheckIn(r.Status)
	r.CanCancel = lifecycle.CanCancel(r.Status)
}

func (d directory) task(t *models.HousekeepingTask) {
	t.RoomNumber, t.RoomType = d.room(t.RoomID)
}

func (d directory) room(id int64) (string, string) {
	if room, ok := d.rooms[id]; ok {
		return room.Number, string(room.Type)
	}
	return unknownRoom, unknownType
}
