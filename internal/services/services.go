package services

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/seed"
)

var (
	ErrTaskTitleRequired = errors.New("task title is required")
	ErrTaskNotFound      = errors.New("task not found")
)

type TaskService interface {
	// ListTasks returns all tasks in insertion order.
	ListTasks(ctx context.Context) ([]*models.Task, error)

	// CreateTask stores a new pending task dated today.
	//
	// It returns ErrTaskTitleRequired if the title is absent.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask applies only the fields present in params.
	//
	// It returns ErrTaskNotFound if the task with
	// the given ID doesn't exist.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task with the given ID. Deleting
	// a missing task is not an error.
	DeleteTask(ctx context.Context, id int64) error

	GetStats(ctx context.Context) (models.Stats, error)

	// SeedTasks inserts the given tasks if the store is empty
	// and reports how many were inserted.
	SeedTasks(ctx context.Context, tasks []seed.Task) (int, error)

	Ping(ctx context.Context) error
}

type CreateTaskParams struct {
	// Title is nil when the request carried no title.
	Title *string
}

type UpdateTaskParams struct {
	ID    int64
	Patch models.TaskPatch
}
