package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
)

func (f *fixture) task(t *testing.T, roomID int64, assignee, taskType, priority, status string) *models.HousekeepingTask {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), &models.CreateTaskRequest{
		RoomID:        roomID,
		AssignedTo:    assignee,
		TaskType:      taskType,
		Priority:      priority,
		Status:        status,
		EstimatedTime: 30,
	})
	require.NoError(t, err)
	return task
}

func TestHousekeepingService_ToggleStatus(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantDirty)
	task := f.task(t, room.ID, "Maria", "cleaning", "high", "")

	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Equal(t, "101", task.RoomNumber)
	assert.Equal(t, "standard", task.RoomType)

	got, err := f.tasks.ToggleStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, got.Status)
	assert.Nil(t, got.CompletedAt)

	got, err = f.tasks.ToggleStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(fixedNow))

	got, err = f.tasks.ToggleStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, got.Status)
	assert.Nil(t, got.CompletedAt)

	_, err = f.tasks.ToggleStatus(ctx, 404)
	assert.True(t, database.IsNotFound(err))
}

func TestHousekeepingService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	room := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantDirty)

	t.Run("Unknown Room", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, &models.CreateTaskRequest{
			RoomID: 99, AssignedTo: "Maria", TaskType: "cleaning", Priority: "low",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "roomId")
	})

	t.Run("Created Completed Is Stamped", func(t *testing.T) {
		task := f.task(t, room.ID, "Joe", "inspection", "low", "completed")
		require.NotNil(t, task.CompletedAt)
	})

	t.Run("Direct Status Change Keeps Completed At Consistent", func(t *testing.T) {
		task := f.task(t, room.ID, "Joe", "turndown", "medium", "in-progress")

		got, err := f.tasks.Update(ctx, task.ID, &models.UpdateTaskRequest{Status: strPtr("completed")})
		require.NoError(t, err)
		require.NotNil(t, got.CompletedAt)

		got, err = f.tasks.Update(ctx, task.ID, &models.UpdateTaskRequest{Status: strPtr("pending")})
		require.NoError(t, err)
		assert.Nil(t, got.CompletedAt)
	})

	t.Run("Room Removed Shows Unknown Room", func(t *testing.T) {
		other := f.room(t, "909", 9, models.RoomTypeSuite, models.RoomStatusOccupied)
		task := f.task(t, other.ID, "Ann", "maintenance", "urgent", "")
		require.NoError(t, f.rooms.Delete(ctx, other.ID))

		got, err := f.tasks.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Unknown Room", got.RoomNumber)
		assert.Equal(t, "Unknown Type", got.RoomType)
	})
}

func TestHousekeepingService_ListAndStats(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	r101 := f.room(t, "101", 1, models.RoomTypeStandard, models.RoomStatusVacantDirty)
	r305 := f.room(t, "305", 3, models.RoomTypeSuite, models.RoomStatusOutOfOrder)
	f.task(t, r101.ID, "Maria", "cleaning", "urgent", "pending")
	f.task(t, r305.ID, "Joe", "maintenance", "urgent", "completed")
	f.task(t, r305.ID, "Maria", "inspection", "low", "in-progress")

	tests := []struct {
		name   string
		filter models.TaskFilter
		want   int
	}{
		{"All", models.TaskFilter{Status: "all", Priority: "all"}, 3},
		{"Room Number", models.TaskFilter{Search: "305"}, 2},
		{"Assignee", models.TaskFilter{Search: "maria"}, 2},
		{"Task Type", models.TaskFilter{Search: "MAINT"}, 1},
		{"Priority", models.TaskFilter{Priority: "urgent"}, 2},
		{"Status And Priority", models.TaskFilter{Status: "pending", Priority: "urgent"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.tasks.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	t.Run("Stats", func(t *testing.T) {
		stats, err := f.tasks.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.TaskStats{Total: 3, Pending: 1, InProgress: 1, Completed: 1, Urgent: 1}, *stats)
	})
}
