// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task represents the structure of a task in the system.
// OwnerID is set at creation and never changes; sharing never transfers ownership.
type Task struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"owner_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskView is a Task annotated for one viewer. Derived on every fetch,
// never persisted: CanEdit/IsShared are stale the moment any mutation lands.
type TaskView struct {
	Task
	CanEdit  bool `json:"can_edit"`
	IsShared bool `json:"is_shared"`

	// SharedBy is the owner's email, filled only for shared tasks.
	SharedBy string `json:"shared_by,omitempty"`
}

// TaskPatch carries the updatable fields; nil means "leave as is".
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
	Priority    *TaskPriority
	Status      *TaskStatus
}
