package db

import (
	"context"
	"database/sql"

	"github.com/chepyr/go-task-api/internal/models"
	"github.com/pkg/errors"
)

// defines methods for task db operations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	List(ctx context.Context) ([]*models.Task, error)
	Count(ctx context.Context) (int, error)
}

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create validates and inserts the task, then stores the generated id on it.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO tasks (description, created_at, updated_at)
	 VALUES ($1, $2, $3) RETURNING id`

	err := r.db.QueryRowContext(
		ctx, query, task.Description, task.CreatedAt, task.UpdatedAt).Scan(&task.ID)
	if err != nil {
		return errors.Wrap(err, "could not insert task")
	}
	return nil
}

// List returns every task, most recently created first. Equal timestamps fall
// back to the id so the order stays stable.
func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	query := `SELECT id, description, created_at, updated_at
	 FROM tasks ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "could not list tasks")
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.Description, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "could not scan task")
		}
		// drivers hand back the session time zone
		task.CreatedAt = task.CreatedAt.UTC()
		task.UpdatedAt = task.UpdatedAt.UTC()
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return tasks, nil
}

func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "could not count tasks")
	}
	return count, nil
}
