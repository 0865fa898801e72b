package services

import (
	"context"
	"fmt"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/lifecycle"
	"github.com/staydesk/backoffice-api/internal/models"
)

// RoomService manages rooms and their status cycle
type RoomService struct {
	Deps
}

// NewRoomService creates a new room service
func NewRoomService(deps Deps) *RoomService {
	return &RoomService{Deps: deps.withDefaults()}
}

// List returns all rooms matching filter
func (s *RoomService) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	rooms, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRooms(rooms, filter), nil
}

func (s *RoomService) all(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.Store.List(ctx, database.CollectionRooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Get returns a room by id
func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	if err := s.Store.Get(ctx, database.CollectionRooms, id, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Create validates and stores a new room
func (s *RoomService) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	id, err := s.Store.Create(ctx, database.CollectionRooms, req.Fields())
	if err != nil {
		if database.IsConflict(err) {
			return nil, conflictAsValidation(err, "number")
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	s.publish(ctx, database.CollectionRooms, ChangeCreated, id)
	return s.Get(ctx, id)
}

// CreateMany creates each room independently
func (s *RoomService) CreateMany(ctx context.Context, reqs []models.CreateRoomRequest) ([]models.Room, error) {
	return createMany(ctx, reqs, s.Create)
}

// Update applies a partial update. Setting the status directly into
// vacant-clean from another status stamps lastCleaned like the cycle does.
func (s *RoomService) Update(ctx context.Context, id int64, req *models.UpdateRoomRequest) (*models.Room, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	fields := req.Fields()
	if err := requireFields(fields); err != nil {
		return nil, err
	}

	var from models.RoomStatus
	if req.Status != nil {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		from = current.Status
		if models.RoomStatus(*req.Status) == models.RoomStatusVacantClean && from != models.RoomStatusVacantClean {
			fields["lastCleaned"] = s.Clock().UTC()
		}
	}

	if err := s.Store.Update(ctx, database.CollectionRooms, id, fields); err != nil {
		return nil, conflictAsValidation(err, "number")
	}
	if req.Status != nil && models.RoomStatus(*req.Status) != from {
		s.publishTransition(ctx, database.CollectionRooms, id, "update", string(from), *req.Status)
	} else {
		s.publish(ctx, database.CollectionRooms, ChangeUpdated, id)
	}
	return s.Get(ctx, id)
}

// Delete removes a room
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Delete(ctx, database.CollectionRooms, id); err != nil {
		return err
	}
	s.publish(ctx, database.CollectionRooms, ChangeDeleted, id)
	return nil
}

// AdvanceStatus moves the room one step along its status cycle and returns
// the stored result
func (s *RoomService) AdvanceStatus(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t := lifecycle.AdvanceRoom(*room, s.Clock().UTC())
	if err := s.Store.Update(ctx, database.CollectionRooms, id, t.Fields()); err != nil {
		return nil, err
	}
	s.publishTransition(ctx, database.CollectionRooms, id, "advance-status", string(t.From), string(t.To))
	return s.Get(ctx, id)
}

// setStatus forces a status as a side effect of another lifecycle
func (s *RoomService) setStatus(ctx context.Context, id int64, status models.RoomStatus, action string) error {
	room, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if room.Status == status {
		return nil
	}
	fields := models.Fields{"status": string(status)}
	if status == models.RoomStatusVacantClean {
		fields["lastCleaned"] = s.Clock().UTC()
	}
	if err := s.Store.Update(ctx, database.CollectionRooms, id, fields); err != nil {
		return err
	}
	s.publishTransition(ctx, database.CollectionRooms, id, action, string(room.Status), string(status))
	return nil
}

// Stats summarises the room grid
func (s *RoomService) Stats(ctx context.Context) (*models.RoomStats, error) {
	rooms, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeRoomStats(rooms)
	return &stats, nil
}

// ByFloor groups filtered rooms by floor, highest floor first
func (s *RoomService) ByFloor(ctx context.Context, filter models.RoomFilter) ([]models.FloorGroup, error) {
	rooms, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return GroupRoomsByFloor(rooms), nil
}
