package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/lifecycle"
	"github.com/staydesk/backoffice-api/internal/models"
)

// HousekeepingService manages housekeeping tasks
type HousekeepingService struct {
	Deps
	rooms *RoomService
}

// NewHousekeepingService creates a new housekeeping service
func NewHousekeepingService(deps Deps, rooms *RoomService) *HousekeepingService {
	return &HousekeepingService{Deps: deps.withDefaults(), rooms: rooms}
}

// List returns all tasks with room display fields resolved, then filtered
func (s *HousekeepingService) List(ctx context.Context, filter models.TaskFilter) ([]models.HousekeepingTask, error) {
	var (
		tasks []models.HousekeepingTask
		rooms []models.Room
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Store.List(gctx, database.CollectionTasks, &tasks)
	})
	g.Go(func() error {
		return s.Store.List(gctx, database.CollectionRooms, &rooms)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dir := newDirectory(nil, rooms)
	for i := range tasks {
		dir.task(&tasks[i])
	}
	return FilterTasks(tasks, filter), nil
}

// Get returns a task by id with room display fields resolved
func (s *HousekeepingService) Get(ctx context.Context, id int64) (*models.HousekeepingTask, error) {
	var task models.HousekeepingTask
	if err := s.Store.Get(ctx, database.CollectionTasks, id, &task); err != nil {
		return nil, err
	}

	var rooms []models.Room
	room, err := s.rooms.Get(ctx, task.RoomID)
	switch {
	case err == nil:
		rooms = append(rooms, *room)
	case !database.IsNotFound(err):
		return nil, err
	}
	newDirectory(nil, rooms).task(&task)
	return &task, nil
}

// Create validates and stores a new task
func (s *HousekeepingService) Create(ctx context.Context, req *models.CreateTaskRequest) (*models.HousekeepingTask, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if _, err := s.rooms.Get(ctx, req.RoomID); err != nil {
		return nil, referenceCheck(err, "roomId", fmt.Sprintf("room %d", req.RoomID))
	}

	fields := req.Fields()
	if fields["status"] == string(models.TaskStatusCompleted) {
		fields["completedAt"] = s.Clock().UTC()
	}

	id, err := s.Store.Create(ctx, database.CollectionTasks, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create housekeeping task: %w", err)
	}
	s.publish(ctx, database.CollectionTasks, ChangeCreated, id)
	return s.Get(ctx, id)
}

// CreateMany creates each task independently
func (s *HousekeepingService) CreateMany(ctx context.Context, reqs []models.CreateTaskRequest) ([]models.HousekeepingTask, error) {
	return createMany(ctx, reqs, s.Create)
}

// Update applies a partial update. A direct status change keeps completedAt
// consistent: stamped on entry into completed, cleared on exit.
func (s *HousekeepingService) Update(ctx context.Context, id int64, req *models.UpdateTaskRequest) (*models.HousekeepingTask, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	fields := req.Fields()
	if err := requireFields(fields); err != nil {
		return nil, err
	}
	if req.RoomID != nil {
		if _, err := s.rooms.Get(ctx, *req.RoomID); err != nil {
			return nil, referenceCheck(err, "roomId", fmt.Sprintf("room %d", *req.RoomID))
		}
	}

	var from models.TaskStatus
	if req.Status != nil {
		var current models.HousekeepingTask
		if err := s.Store.Get(ctx, database.CollectionTasks, id, &current); err != nil {
			return nil, err
		}
		from = current.Status
		to := models.TaskStatus(*req.Status)
		switch {
		case to == models.TaskStatusCompleted && from != models.TaskStatusCompleted:
			fields["completedAt"] = s.Clock().UTC()
		case to != models.TaskStatusCompleted:
			fields["completedAt"] = nil
		}
	}

	if err := s.Store.Update(ctx, database.CollectionTasks, id, fields); err != nil {
		return nil, err
	}
	if req.Status != nil && models.TaskStatus(*req.Status) != from {
		s.publishTransition(ctx, database.CollectionTasks, id, "update", string(from), *req.Status)
	} else {
		s.publish(ctx, database.CollectionTasks, ChangeUpdated, id)
	}
	return s.Get(ctx, id)
}

// Delete removes a task
func (s *HousekeepingService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Delete(ctx, database.CollectionTasks, id); err != nil {
		return err
	}
	s.publish(ctx, database.CollectionTasks, ChangeDeleted, id)
	return nil
}

// ToggleStatus moves the task one step along pending, in-progress, completed
func (s *HousekeepingService) ToggleStatus(ctx context.Context, id int64) (*models.HousekeepingTask, error) {
	var task models.HousekeepingTask
	if err := s.Store.Get(ctx, database.CollectionTasks, id, &task); err != nil {
		return nil, err
	}
	t := lifecycle.ToggleTask(task, s.Clock().UTC())
	if err := s.Store.Update(ctx, database.CollectionTasks, id, t.Fields()); err != nil {
		return nil, err
	}
	s.publishTransition(ctx, database.CollectionTasks, id, "toggle-status", string(t.From), string(t.To))
	return s.Get(ctx, id)
}

// Stats summarises the housekeeping board
func (s *HousekeepingService) Stats(ctx context.Context) (*models.TaskStats, error) {
	var tasks []models.HousekeepingTask
	if err := s.Store.List(ctx, database.CollectionTasks, &tasks); err != nil {
		return nil, err
	}
	stats := ComputeTaskStats(tasks)
	return &stats, nil
}
