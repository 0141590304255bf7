package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type TaskRepository struct {
	mu     sync.RWMutex
	tasks  []models.Task
	lastID int64
}

var _ storage.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

func (r *TaskRepository) ListTasks(_ context.Context) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Task, len(r.tasks))
	for i := range r.tasks {
		task := r.tasks[i]
		out[i] = &task
	}
	return out, nil
}

func (r *TaskRepository) CreateTask(_ context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	stored := *task
	stored.ID = r.lastID
	r.tasks = append(r.tasks, stored)
	return &stored, nil
}

func (r *TaskRepository) UpdateTask(_ context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, storage.ErrTaskNotFound
	}
	patch.Apply(&r.tasks[i])

	updated := r.tasks[i]
	return &updated, nil
}

func (r *TaskRepository) DeleteTask(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.tasks = slices.Delete(r.tasks, i, i+1)
	return true, nil
}

func (r *TaskRepository) GetStats(_ context.Context) (models.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	completed := 0
	for _, task := range r.tasks {
		if task.Completed {
			completed++
		}
	}
	return models.NewStats(len(r.tasks), completed), nil
}

func (r *TaskRepository) CountTasks(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks), nil
}

func (r *TaskRepository) Ping(context.Context) error { return nil }

func (r *TaskRepository) Close() error { return nil }

// indexOf must be called with r.mu held.
func (r *TaskRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.tasks, func(t models.Task) bool {
		return t.ID == id
	})
}
