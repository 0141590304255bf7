package storage

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository stores tasks in insertion order and assigns their ids.
type TaskRepository interface {
	// ListTasks returns every task in insertion order.
	ListTasks(ctx context.Context) ([]*models.Task, error)

	// CreateTask assigns the next id to task, stores it and returns
	// the stored copy. Ids are never reused, even after deletes.
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)

	// UpdateTask applies patch to the task with the given id.
	//
	// It returns ErrTaskNotFound if no such task exists.
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)

	// DeleteTask removes the task with the given id and reports
	// whether it existed.
	DeleteTask(ctx context.Context, id int64) (bool, error)

	// GetStats counts tasks at the time of the call.
	GetStats(ctx context.Context) (models.Stats, error)

	// CountTasks returns the number of stored tasks.
	CountTasks(ctx context.Context) (int, error)

	Ping(ctx context.Context) error
	Close() error
}
