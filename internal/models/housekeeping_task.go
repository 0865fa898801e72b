package models

import "time"

// TaskType is the kind of housekeeping work
type TaskType string

const (
	TaskTypeCleaning    TaskType = "cleaning"
	TaskTypeMaintenance TaskType = "maintenance"
	TaskTypeInspection  TaskType = "inspection"
	TaskTypeDeepClean   TaskType = "deep-clean"
	TaskTypeTurndown    TaskType = "turndown"
)

// TaskPriority ranks housekeeping work
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskStatus represents progress on a housekeeping task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// HousekeepingTask represents a unit of housekeeping work on a room
type HousekeepingTask struct {
	ID            int64        `json:"id" db:"id"`
	RoomID        int64        `json:"roomId" db:"room_id"`
	AssignedTo    string       `json:"assignedTo" db:"assigned_to"`
	TaskType      TaskType     `json:"taskType" db:"task_type"`
	Priority      TaskPriority `json:"priority" db:"priority"`
	Status        TaskStatus   `json:"status" db:"status"`
	EstimatedTime int          `json:"estimatedTime" db:"estimated_time"`
	CompletedAt   *time.Time   `json:"completedAt" db:"completed_at"`
	Notes         string       `json:"notes" db:"notes"`

	RoomNumber string `json:"roomNumber" db:"-"`
	RoomType   string `json:"roomType" db:"-"`
}

// CreateTaskRequest represents the request to create a housekeeping task
type CreateTaskRequest struct {
	RoomID        int64  `json:"roomId" binding:"required,gt=0"`
	AssignedTo    string `json:"assignedTo" binding:"required,max=100"`
	TaskType      string `json:"taskType" binding:"required,oneof=cleaning maintenance inspection deep-clean turndown"`
	Priority      string `json:"priority" binding:"required,oneof=low medium high urgent"`
	Status        string `json:"status,omitempty" binding:"omitempty,oneof=pending in-progress completed"`
	EstimatedTime int    `json:"estimatedTime" binding:"gte=0"`
	Notes         string `json:"notes,omitempty" binding:"max=1000"`
}

// Fields converts the request into a storable record; new tasks default to pending
func (r *CreateTaskRequest) Fields() Fields {
	status := r.Status
	if status == "" {
		status = string(TaskStatusPending)
	}
	return Fields{
		"roomId":        r.RoomID,
		"assignedTo":    r.AssignedTo,
		"taskType":      r.TaskType,
		"priority":      r.Priority,
		"status":        status,
		"estimatedTime": r.EstimatedTime,
		"notes":         r.Notes,
	}
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	RoomID        *int64  `json:"roomId,omitempty" binding:"omitempty,gt=0"`
	AssignedTo    *string `json:"assignedTo,omitempty" binding:"omitempty,max=100"`
	TaskType      *string `json:"taskType,omitempty" binding:"omitempty,oneof=cleaning maintenance inspection deep-clean turndown"`
	Priority      *string `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent"`
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=pending in-progress completed"`
	EstimatedTime *int    `json:"estimatedTime,omitempty" binding:"omitempty,gte=0"`
	Notes         *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// Fields returns only the fields that were provided
func (r *UpdateTaskRequest) Fields() Fields {
	f := Fields{}
	if r.RoomID != nil {
		f["roomId"] = *r.RoomID
	}
	if r.AssignedTo != nil {
		f["assignedTo"] = *r.AssignedTo
	}
	if r.TaskType != nil {
		f["taskType"] = *r.TaskType
	}
	if r.Priority != nil {
		f["priority"] = *r.Priority
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	if r.EstimatedTime != nil {
		f["estimatedTime"] = *r.EstimatedTime
	}
	if r.Notes != nil {
		f["notes"] = *r.Notes
	}
	return f
}

// TaskFilter narrows a task listing
type TaskFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
}

// TaskStats summarises the housekeeping board
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Urgent     int `json:"urgent"`
}
