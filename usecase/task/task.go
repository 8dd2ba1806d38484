package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskify/backend/domain"
	"github.com/taskify/backend/repository"
)

// UseCase orchestrates validation and repository calls for every task
// operation. It holds no state of its own between requests; the repository
// is the single point of shared mutable state.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// CreateTask validates the candidate task, applies the pending default and
// stamps both timestamps with the same instant before persisting.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.Status == "" {
		task.Status = domain.StatusPending
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task.ID = ""
	task.CreatedAt = now
	task.UpdatedAt = now

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		uc.logger.Error("task create failed", zap.Error(err))
		return nil, err
	}
	uc.logger.Info("task created", zap.String("task_id", created.ID))
	return created, nil
}

func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.List(ctx)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundByID(err, id)
	}
	return task, nil
}

// UpdateTask merges the supplied fields into an existing task. Fields absent
// from the patch are preserved; id and created_at are never mutable input.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.ErrEmptyUpdate
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.UpdateFields(ctx, id, patch)
	if err != nil {
		return nil, notFoundByID(err, id)
	}
	uc.logger.Info("task updated", zap.String("task_id", id))
	return updated, nil
}

// UpdateStatus changes only the status of a task, leaving every other field
// byte-identical.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if err := domain.ValidateStatus(status); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.UpdateFields(ctx, id, domain.TaskPatch{Status: &status})
	if err != nil {
		return nil, notFoundByID(err, id)
	}
	uc.logger.Info("task status updated",
		zap.String("task_id", id),
		zap.String("status", string(status)))
	return updated, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return notFoundByID(err, id)
	}
	uc.logger.Info("task deleted", zap.String("task_id", id))
	return nil
}

// FilterByStatus returns every task in the given status. An empty result is
// a success, unlike Search.
func (uc *UseCase) FilterByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	if err := domain.ValidateStatus(status); err != nil {
		return nil, err
	}
	return uc.tasks.ListByStatus(ctx, status)
}

// SearchTasks finds tasks whose title or description contains the query,
// case-insensitively. Zero matches are deliberately reported as a not-found
// condition rather than an empty success payload.
func (uc *UseCase) SearchTasks(ctx context.Context, query string) ([]domain.Task, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "q", Reason: "search query must not be empty"},
		}}
	}

	tasks, err := uc.tasks.Search(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, domain.NewError(domain.ErrCodeNotFound,
			fmt.Sprintf("no tasks match query %q", trimmed))
	}
	return tasks, nil
}

// notFoundByID rewrites the repository's bare not-found sentinel into one
// naming the identifier, so the caller learns which reference missed.
func notFoundByID(err error, id string) error {
	if errors.Is(err, domain.ErrTaskNotFound) {
		return domain.NewError(domain.ErrCodeNotFound,
			fmt.Sprintf("task with id %s not found", id))
	}
	return err
}
