package task

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrStaleRecord reports a write that collided with a concurrent update.
	// The service decides whether the conflict is recoverable.
	ErrStaleRecord = errors.New("task was modified concurrently")
)

// TaskFilter defines filtering and ordering options for task listings
type TaskFilter struct {
	AssignedTo *string
	SortOrder  string
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	Create(ctx context.Context, task *TaskItem) error
	FindByID(ctx context.Context, id uint) (*TaskItem, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]TaskItem, error)
	Update(ctx context.Context, task *TaskItem) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *TaskItem) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*TaskItem, error) {
	var task TaskItem
	result := r.db.WithContext(ctx).First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter TaskFilter) ([]TaskItem, error) {
	var tasks []TaskItem

	query := r.db.WithContext(ctx)

	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}

	switch filter.SortOrder {
	case SortTitleDesc:
		query = query.Order("title DESC")
	case SortDeadlineAsc:
		query = query.Order("deadline ASC")
	case SortDeadlineDesc:
		query = query.Order("deadline DESC")
	case SortProgressAsc:
		query = query.Order("progress ASC")
	case SortProgressDesc:
		query = query.Order("progress DESC")
	default:
		query = query.Order("title ASC")
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update replaces the mutable fields of a task. The write is guarded by the
// record's version: a concurrent modification since the task was read makes
// the guard miss and the update reports ErrStaleRecord.
func (r *taskRepository) Update(ctx context.Context, task *TaskItem) error {
	result := r.db.WithContext(ctx).Model(&TaskItem{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"deadline":    task.Deadline,
			"progress":    task.Progress,
			"assigned_to": task.AssignedTo,
			"version":     task.Version + 1,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleRecord
	}
	task.Version++
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&TaskItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TaskItem{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
