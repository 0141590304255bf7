package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type TaskRepository struct {
	pgPool *pgxpool.Pool
}

var _ storage.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(pgPool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pgPool: pgPool}
}

// Migrate creates the tasks table if it does not exist yet.
func (r *TaskRepository) Migrate(ctx context.Context) error {
	const createTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    title      TEXT    NOT NULL,
    completed  BOOLEAN NOT NULL DEFAULT FALSE,
    created_at DATE    NOT NULL
)
`
	_, err := r.pgPool.Exec(ctx, createTasksTableQuery)
	if err != nil {
		// Two instances racing on CREATE TABLE IF NOT EXISTS may still
		// collide on the catalog; the table exists either way.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgerrcode.UniqueViolation || pgErr.Code == pgerrcode.DuplicateTable) {
			return nil
		}
		return err
	}
	return nil
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]*models.Task, error) {
	const selectTasksQuery = `
SELECT id,
       title,
       completed,
       to_char(created_at, 'YYYY-MM-DD')
FROM tasks
ORDER BY id
`
	rows, err := r.pgPool.Query(ctx, selectTasksQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := new(models.Task)
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Completed,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	stored := *task

	const insertTaskQuery = `
INSERT INTO tasks (title,
                   completed,
                   created_at)
VALUES ($1, $2, $3::date)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		stored.Title,
		stored.Completed,
		stored.CreatedAt,
	).Scan(&stored.ID)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	task := &models.Task{ID: id}

	const updateTaskQuery = `
UPDATE tasks
SET title = COALESCE($1::text, title),
    completed = COALESCE($2::boolean, completed)
WHERE id = $3
RETURNING title, completed, to_char(created_at, 'YYYY-MM-DD')
`
	err := r.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		patch.Title,
		patch.Completed,
		id,
	).Scan(
		&task.Title,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) (bool, error) {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepository) GetStats(ctx context.Context) (models.Stats, error) {
	const selectStatsQuery = `
SELECT count(*),
       count(*) FILTER (WHERE completed)
FROM tasks
`
	var total, completed int
	err := r.pgPool.QueryRow(ctx, selectStatsQuery).Scan(&total, &completed)
	if err != nil {
		return models.Stats{}, err
	}
	return models.NewStats(total, completed), nil
}

func (r *TaskRepository) CountTasks(ctx context.Context) (int, error) {
	var count int
	err := r.pgPool.QueryRow(ctx, `SELECT count(*) FROM tasks`).Scan(&count)
	return count, err
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.pgPool.Ping(ctx)
}

func (r *TaskRepository) Close() error {
	r.pgPool.Close()
	return nil
}
