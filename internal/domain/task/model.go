package task

import (
	"time"

	"gorm.io/gorm"
)

// Recognized sortOrder values. Anything else falls back to title ascending.
const (
	SortTitleAsc     = ""
	SortTitleDesc    = "title_desc"
	SortDeadlineAsc  = "Deadline"
	SortDeadlineDesc = "deadline_desc"
	SortProgressAsc  = "Progress"
	SortProgressDesc = "progress_desc"
)

// TaskItem represents a unit of work assigned to a user by display name.
// AssignedTo is a soft reference to users.username: renaming or deleting an
// account silently orphans historical assignments.
type TaskItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Progress    int       `json:"progress"`
	AssignedTo  string    `json:"assigned_to" gorm:"index:idx_task_assigned_to"`
	Version     int       `json:"-" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the TaskItem model
func (TaskItem) TableName() string {
	return "tasks"
}

// Validate checks if the task data is valid
func (t *TaskItem) Validate() error {
	if t.Title == "" {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new task record
func (t *TaskItem) BeforeCreate(tx *gorm.DB) error {
	if t.Deadline.IsZero() {
		t.Deadline = time.Now()
	}
	return t.Validate()
}
