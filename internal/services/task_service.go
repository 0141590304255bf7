package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/seed"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	repo   storage.TaskRepository
	now    func() time.Time
}

func NewTaskService(
	logger zerolog.Logger,
	repo storage.TaskRepository,
	now func() time.Time,
) TaskService {
	if now == nil {
		now = time.Now
	}
	return &taskServiceImpl{
		logger: logger,
		repo:   repo,
		now:    now,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if params.Title == nil {
		s.logger.Debug().Msg("task title is missing")
		return nil, ErrTaskTitleRequired
	}

	task, err := s.repo.CreateTask(ctx, &models.Task{
		Title:     *params.Title,
		Completed: false,
		CreatedAt: s.today(),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.repo.UpdateTask(ctx, params.ID, params.Patch)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			s.logger.Debug().
				Int64("task_id", params.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Bool("title", params.Patch.Title != nil).
		Bool("completed", params.Patch.Completed != nil).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	existed, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", id).
		Bool("existed", existed).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) GetStats(ctx context.Context) (models.Stats, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compute stats")
		return models.Stats{}, err
	}
	return stats, nil
}

func (s *taskServiceImpl) SeedTasks(ctx context.Context, tasks []seed.Task) (int, error) {
	count, err := s.repo.CountTasks(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count tasks")
		return 0, err
	}
	if count > 0 {
		s.logger.Info().
			Int("count", count).
			Msg("store is not empty, skipping seed")
		return 0, nil
	}

	for i, t := range tasks {
		createdAt := t.CreatedAt
		if createdAt == "" {
			createdAt = s.today()
		}

		_, err = s.repo.CreateTask(ctx, &models.Task{
			Title:     t.Title,
			Completed: t.Completed,
			CreatedAt: createdAt,
		})
		if err != nil {
			s.logger.Error().
				Err(err).
				Int("index", i).
				Msg("failed to insert seed task")
			return i, err
		}
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Msg("seeded tasks")
	return len(tasks), nil
}

func (s *taskServiceImpl) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// today is the server-local date.
func (s *taskServiceImpl) today() string {
	return s.now().Format(models.DateLayout)
}
