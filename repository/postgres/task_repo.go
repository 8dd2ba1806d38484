package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskify/backend/domain"
	"github.com/taskify/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = "id, title, description, status, created_at, updated_at"

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = domain.NewID()
	}

	const query = `
	INSERT INTO tasks (id, title, description, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	); err != nil {
		return nil, storeErr(err)
	}

	return task, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1
	`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	ORDER BY created_at, id
	`
	return r.queryTasks(ctx, query)
}

func (r *taskRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE status = $1
	ORDER BY created_at, id
	`
	return r.queryTasks(ctx, query, string(status))
}

func (r *taskRepository) Search(ctx context.Context, query string) ([]domain.Task, error) {
	const stmt = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE title ILIKE $1 OR description ILIKE $1
	ORDER BY created_at, id
	`
	return r.queryTasks(ctx, stmt, "%"+escapeLike(query)+"%")
}

func (r *taskRepository) UpdateFields(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	// COALESCE keeps columns whose patch field is nil; a pointer to a zero
	// value still overwrites. updated_at moves in the same statement so the
	// merge and the timestamp are atomic per document.
	const query = `
	UPDATE tasks
	SET title = COALESCE($2, title),
		description = COALESCE($3, description),
		status = COALESCE($4, status),
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + taskColumns + `
	`
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	return scanTask(r.pool.QueryRow(ctx, query, id, patch.Title, patch.Description, status))
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return tasks, nil
}
