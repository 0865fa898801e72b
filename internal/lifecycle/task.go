package lifecycle

import (
	"time"

	"github.com/staydesk/backoffice-api/internal/models"
)

// NextTaskStatus cycles pending, in-progress, completed and back to pending.
func NextTaskStatus(current models.TaskStatus) models.TaskStatus {
	switch current {
	case models.TaskStatusPending:
		return models.TaskStatusInProgress
	case models.TaskStatusInProgress:
		return models.TaskStatusCompleted
	default:
		return models.TaskStatusPending
	}
}

// TaskTransition is the patch produced by toggling a task
type TaskTransition struct {
	From        models.TaskStatus
	To          models.TaskStatus
	CompletedAt *time.Time
}

// Fields renders the transition as a partial update; completedAt is always
// written so leaving completed clears it.
func (t TaskTransition) Fields() models.Fields {
	f := models.Fields{"status": string(t.To), "completedAt": nil}
	if t.CompletedAt != nil {
		f["completedAt"] = *t.CompletedAt
	}
	return f
}

// ToggleTask computes the next task status. completedAt is set only when
// the task becomes completed and cleared on every other transition.
func ToggleTask(task models.HousekeepingTask, now time.Time) TaskTransition {
	next := NextTaskStatus(task.Status)
	t := TaskTransition{From: task.Status, To: next}
	if next == models.TaskStatusCompleted {
		stamp := now
		t.CompletedAt = &stamp
	}
	return t
}
