package task

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrIDMismatch reports an update whose path id differs from the payload id.
	ErrIDMismatch = errors.New("task id mismatch")

	// ErrConflict reports a concurrent-update collision on a task that still
	// exists. There is no merge or retry; the caller gets the failure as is.
	ErrConflict = errors.New("task update conflict")
)

type Service interface {
	ListTasks(ctx context.Context, sortOrder string, assignedTo *string) ([]TaskItem, error)
	GetTask(ctx context.Context, id uint) (*TaskItem, error)
	CreateTask(ctx context.Context, input CreateTaskInput) (*TaskItem, error)
	UpdateTask(ctx context.Context, id uint, input UpdateTaskInput) (*TaskItem, error)
	DeleteTask(ctx context.Context, id uint) error
}

type CreateTaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Progress    int       `json:"progress"`
	AssignedTo  string    `json:"assigned_to"`
}

// UpdateTaskInput carries the full replacement state of a task. ID must match
// the id the caller addressed.
type UpdateTaskInput struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Progress    int       `json:"progress"`
	AssignedTo  string    `json:"assigned_to"`
}

type service struct {
	repo   TaskRepository
	logger *zap.Logger
}

func NewService(repo TaskRepository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) ListTasks(ctx context.Context, sortOrder string, assignedTo *string) ([]TaskItem, error) {
	tasks, err := s.repo.FindAll(ctx, TaskFilter{
		AssignedTo: assignedTo,
		SortOrder:  sortOrder,
	})
	if err != nil {
		s.logger.Error("failed to list tasks",
			zap.String("sort_order", sortOrder),
			zap.Error(err))
		return nil, err
	}
	return tasks, nil
}

func (s *service) GetTask(ctx context.Context, id uint) (*TaskItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*TaskItem, error) {
	if input.Title == "" {
		return nil, ErrInvalidInput
	}

	deadline := input.Deadline
	if deadline.IsZero() {
		deadline = time.Now()
	}

	task := &TaskItem{
		Title:       input.Title,
		Description: input.Description,
		Deadline:    deadline,
		Progress:    input.Progress,
		AssignedTo:  input.AssignedTo,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			zap.String("title", input.Title),
			zap.Error(err))
		return nil, err
	}

	return task, nil
}

// UpdateTask replaces all mutable fields of the addressed task. A collision
// with a concurrent write is recoverable only when the record no longer
// exists; otherwise it surfaces as ErrConflict.
func (s *service) UpdateTask(ctx context.Context, id uint, input UpdateTaskInput) (*TaskItem, error) {
	if id != input.ID {
		return nil, ErrIDMismatch
	}
	if input.Title == "" {
		return nil, ErrInvalidInput
	}

	// An omitted deadline defaults to now, same as on create; a zero time
	// must never reach the store.
	deadline := input.Deadline
	if deadline.IsZero() {
		deadline = time.Now()
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Deadline = deadline
	existing.Progress = input.Progress
	existing.AssignedTo = input.AssignedTo

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, ErrStaleRecord) {
			exists, checkErr := s.repo.Exists(ctx, id)
			if checkErr != nil {
				return nil, checkErr
			}
			if !exists {
				return nil, ErrTaskNotFound
			}
			s.logger.Error("concurrency conflict while updating task",
				zap.Uint("task_id", id))
			return nil, ErrConflict
		}
		s.logger.Error("failed to update task",
			zap.Uint("task_id", id),
			zap.Error(err))
		return nil, err
	}

	return existing, nil
}

func (s *service) DeleteTask(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return err
		}
		s.logger.Error("failed to delete task",
			zap.Uint("task_id", id),
			zap.Error(err))
		return err
	}
	return nil
}
