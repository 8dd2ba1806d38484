package repository

import (
	"context"

	"github.com/taskify/backend/domain"
)

// TaskRepository is the storage contract the task service depends on.
//
// Implementations must be atomic per document, report absence with
// domain.ErrTaskNotFound, and classify infrastructure failures with
// domain.ErrCodeUnavailable instead of leaking driver errors. UpdateFields
// merges only the fields the patch carries and rewrites updated_at in the
// same operation; it never upserts.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error)
	Search(ctx context.Context, query string) ([]domain.Task, error)
	UpdateFields(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
