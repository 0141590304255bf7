package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

// errTableExists is ER_TABLE_EXISTS_ERROR.
const errTableExists = 1050

type taskRow struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	Completed bool   `db:"completed"`
	CreatedAt string `db:"created_at"`
}

func (row taskRow) toModel() *models.Task {
	return &models.Task{
		ID:        row.ID,
		Title:     row.Title,
		Completed: row.Completed,
		CreatedAt: row.CreatedAt,
	}
}

type TaskRepository struct {
	db *sqlx.DB
}

var _ storage.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Open connects with the go-sql-driver DSN and pings the server.
func Open(ctx context.Context, dsn string) (*TaskRepository, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, "mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	return NewTaskRepository(db), nil
}

func (r *TaskRepository) Migrate(ctx context.Context) error {
	const createTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id         BIGINT       PRIMARY KEY AUTO_INCREMENT,
    title      TEXT         NOT NULL,
    completed  BOOLEAN      NOT NULL DEFAULT FALSE,
    created_at DATE         NOT NULL
)`
	_, err := r.db.ExecContext(ctx, createTasksTableQuery)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errTableExists {
			return nil
		}
		return err
	}
	return nil
}

const selectTaskColumns = `id, title, completed, DATE_FORMAT(created_at, '%Y-%m-%d') AS created_at`

func (r *TaskRepository) ListTasks(ctx context.Context) ([]*models.Task, error) {
	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows, `SELECT `+selectTaskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}

	tasks := make([]*models.Task, len(rows))
	for i, row := range rows {
		tasks[i] = row.toModel()
	}
	return tasks, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	stored := *task

	const insertTaskQuery = `
INSERT INTO tasks (title, completed, created_at)
VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(
		ctx,
		insertTaskQuery,
		stored.Title,
		stored.Completed,
		stored.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	stored.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateTask locks the row first because MySQL reports zero affected
// rows for an UPDATE that changes nothing.
func (r *TaskRepository) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var row taskRow
	err = tx.GetContext(ctx, &row, `SELECT `+selectTaskColumns+` FROM tasks WHERE id = ? FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}
		return nil, err
	}

	task := row.toModel()
	patch.Apply(task)

	const updateTaskQuery = `
UPDATE tasks
SET title = ?,
    completed = ?
WHERE id = ?`
	_, err = tx.ExecContext(ctx, updateTaskQuery, task.Title, task.Completed, id)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *TaskRepository) GetStats(ctx context.Context) (models.Stats, error) {
	var counts struct {
		Total     int `db:"total"`
		Completed int `db:"completed"`
	}
	const selectStatsQuery = `
SELECT COUNT(*) AS total,
       COALESCE(SUM(completed), 0) AS completed
FROM tasks`
	err := r.db.GetContext(ctx, &counts, selectStatsQuery)
	if err != nil {
		return models.Stats{}, err
	}
	return models.NewStats(counts.Total, counts.Completed), nil
}

func (r *TaskRepository) CountTasks(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tasks`)
	return count, err
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *TaskRepository) Close() error {
	return r.db.Close()
}
