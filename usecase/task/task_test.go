package task

import (
	"context"
	"strings"
	"testing"

	"github.com/taskify/backend/domain"
)

// --- fakes ---

type fakeRepo struct {
	createFn       func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	getFn          func(ctx context.Context, id string) (*domain.Task, error)
	listFn         func(ctx context.Context) ([]domain.Task, error)
	listByStatusFn func(ctx context.Context, status domain.Status) ([]domain.Task, error)
	searchFn       func(ctx context.Context, query string) ([]domain.Task, error)
	updateFn       func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (r *fakeRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return r.createFn(ctx, task)
}
func (r *fakeRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.getFn(ctx, id)
}
func (r *fakeRepo) List(ctx context.Context) ([]domain.Task, error) {
	return r.listFn(ctx)
}
func (r *fakeRepo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	return r.listByStatusFn(ctx, status)
}
func (r *fakeRepo) Search(ctx context.Context, query string) ([]domain.Task, error) {
	return r.searchFn(ctx, query)
}
func (r *fakeRepo) UpdateFields(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	return r.updateFn(ctx, id, patch)
}
func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	return r.deleteFn(ctx, id)
}

// untouchedRepo fails the test if any repository method is reached.
func untouchedRepo(t *testing.T) *fakeRepo {
	t.Helper()
	fail := func() {
		t.Fatalf("repository must not be reached")
	}
	return &fakeRepo{
		createFn: func(context.Context, *domain.Task) (*domain.Task, error) {
			fail()
			return nil, nil
		},
		getFn: func(context.Context, string) (*domain.Task, error) {
			fail()
			return nil, nil
		},
		listFn: func(context.Context) ([]domain.Task, error) {
			fail()
			return nil, nil
		},
		listByStatusFn: func(context.Context, domain.Status) ([]domain.Task, error) {
			fail()
			return nil, nil
		},
		searchFn: func(context.Context, string) ([]domain.Task, error) {
			fail()
			return nil, nil
		},
		updateFn: func(context.Context, string, domain.TaskPatch) (*domain.Task, error) {
			fail()
			return nil, nil
		},
		deleteFn: func(context.Context, string) error {
			fail()
			return nil
		},
	}
}

const wellFormedID = "d9428888-122b-11e1-b85c-61cd3cbb3210"

// --- Create ---

func TestCreateTask_DefaultsAndTimestamps(t *testing.T) {
	var stored *domain.Task
	repo := untouchedRepo(t)
	repo.createFn = func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
		task.ID = domain.NewID()
		stored = task
		return task, nil
	}

	uc := New(repo, nil)
	created, err := uc.CreateTask(context.Background(), &domain.Task{Title: "Buy groceries"})
	if err != nil {
		t.Fatalf("CreateTask() err=%v, want nil", err)
	}
	if created.Status != domain.StatusPending {
		t.Fatalf("Status=%q, want %q when omitted", created.Status, domain.StatusPending)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt is zero")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("CreatedAt=%v UpdatedAt=%v, want equal at creation", created.CreatedAt, created.UpdatedAt)
	}
	if stored == nil || stored.ID == "" {
		t.Fatalf("store did not assign an id")
	}
}

func TestCreateTask_ValidationStopsBeforeStore(t *testing.T) {
	uc := New(untouchedRepo(t), nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{Title: ""})
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("err=%v, want *ValidationError", err)
	}
	if len(vErr.Violations) != 1 || vErr.Violations[0].Field != "title" {
		t.Fatalf("violations=%v, want one naming title", vErr.Violations)
	}
}

func TestCreateTask_CallerSuppliedIDIgnored(t *testing.T) {
	repo := untouchedRepo(t)
	repo.createFn = func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
		if task.ID != "" {
			t.Fatalf("task.ID=%q, want empty (store assigns ids)", task.ID)
		}
		task.ID = domain.NewID()
		return task, nil
	}

	uc := New(repo, nil)
	if _, err := uc.CreateTask(context.Background(), &domain.Task{ID: "smuggled", Title: "t"}); err != nil {
		t.Fatalf("CreateTask() err=%v, want nil", err)
	}
}

// --- GetById ---

func TestGetTask_MalformedIDRejectedBeforeStore(t *testing.T) {
	uc := New(untouchedRepo(t), nil)

	_, err := uc.GetTask(context.Background(), "not-a-valid-id")
	if !domain.IsDomainError(err, domain.ErrCodeInvalidID) {
		t.Fatalf("GetTask() err=%v, want INVALID_ID", err)
	}
}

func TestGetTask_AbsentReportsIdentifier(t *testing.T) {
	repo := untouchedRepo(t)
	repo.getFn = func(ctx context.Context, id string) (*domain.Task, error) {
		return nil, domain.ErrTaskNotFound
	}

	uc := New(repo, nil)
	_, err := uc.GetTask(context.Background(), wellFormedID)
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("GetTask() err=%v, want NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), wellFormedID) {
		t.Fatalf("err=%q, want it to name the missing id", err)
	}
}

// --- PartialUpdate ---

func TestUpdateTask_EmptyPatchRejected(t *testing.T) {
	uc := New(untouchedRepo(t), nil)

	_, err := uc.UpdateTask(context.Background(), wellFormedID, domain.TaskPatch{})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("UpdateTask() err=%v, want INVALID for empty patch", err)
	}
}

func TestUpdateTask_InvalidFieldRejectedBeforeStore(t *testing.T) {
	uc := New(untouchedRepo(t), nil)

	long := strings.Repeat("d", domain.DescriptionMaxLen+1)
	_, err := uc.UpdateTask(context.Background(), wellFormedID, domain.TaskPatch{Description: &long})
	if _, ok := domain.AsValidationError(err); !ok {
		t.Fatalf("UpdateTask() err=%v, want *ValidationError", err)
	}
}

func TestUpdateTask_PassesPatchThrough(t *testing.T) {
	repo := untouchedRepo(t)
	repo.updateFn = func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
		if patch.Title != nil || patch.Status != nil {
			t.Fatalf("patch carries fields that were not supplied: %+v", patch)
		}
		if patch.Description == nil || *patch.Description != "" {
			t.Fatalf("explicitly cleared description lost in transit")
		}
		return &domain.Task{ID: id, Title: "kept", Description: ""}, nil
	}

	uc := New(repo, nil)
	cleared := ""
	updated, err := uc.UpdateTask(context.Background(), wellFormedID, domain.TaskPatch{Description: &cleared})
	if err != nil {
		t.Fatalf("UpdateTask() err=%v, want nil", err)
	}
	if updated.Title != "kept" {
		t.Fatalf("Title=%q, want untouched value from store", updated.Title)
	}
}

// --- UpdateStatus ---

func TestUpdateStatus_InvalidStatusRejected(t *testing.T) {
	uc := New(untouchedRepo(t), nil)

	_, err := uc.UpdateStatus(context.Background(), wellFormedID, domain.Status("archived"))
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("UpdateStatus() err=%v, want *ValidationError", err)
	}
	if vErr.Violations[0].Field != "status" {
		t.Fatalf("violated field=%q, want status", vErr.Violations[0].Field)
	}
}

func TestUpdateStatus_StatusOnlyPatch(t *testing.T) {
	repo := untouchedRepo(t)
	repo.updateFn = func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
		if patch.Title != nil || patch.Description != nil {
			t.Fatalf("status update must not carry other fields: %+v", patch)
		}
		if patch.Status == nil || *patch.Status != domain.StatusCompleted {
			t.Fatalf("patch.Status=%v, want completed", patch.Status)
		}
		return &domain.Task{ID: id, Status: *patch.Status}, nil
	}

	uc := New(repo, nil)
	if _, err := uc.UpdateStatus(context.Background(), wellFormedID, domain.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus() err=%v, want nil", err)
	}
}

// --- Delete ---

func TestDeleteTask_SecondDeleteReportsNotFound(t *testing.T) {
	deleted := false
	repo := untouchedRepo(t)
	repo.deleteFn = func(ctx context.Context, id string) error {
		if deleted {
			return domain.ErrTaskNotFound
		}
		deleted = true
		return nil
	}

	uc := New(repo, nil)
	if err := uc.DeleteTask(context.Background(), wellFormedID); err != nil {
		t.Fatalf("first DeleteTask() err=%v, want nil", err)
	}
	err := uc.DeleteTask(context.Background(), wellFormedID)
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("second DeleteTask() err=%v, want NOT_FOUND", err)
	}
}

// --- FilterByStatus ---

func TestFilterByStatus_InvalidStatusRejected(t *testing.T) {
	uc := New(untouchedRepo(t), nil)

	_, err := uc.FilterByStatus(context.Background(), domain.Status("bogus"))
	if _, ok := domain.AsValidationError(err); !ok {
		t.Fatalf("FilterByStatus() err=%v, want *ValidationError", err)
	}
}

func TestFilterByStatus_EmptyResultIsSuccess(t *testing.T) {
	repo := untouchedRepo(t)
	repo.listByStatusFn = func(ctx context.Context, status domain.Status) ([]domain.Task, error) {
		return nil, nil
	}

	uc := New(repo, nil)
	tasks, err := uc.FilterByStatus(context.Background(), domain.StatusCompleted)
	if err != nil {
		t.Fatalf("FilterByStatus() err=%v, want nil on zero matches", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("tasks=%v, want empty", tasks)
	}
}

// --- Search ---

func TestSearchTasks_BlankQueryRejected(t *testing.T) {
	uc := New(untouchedRepo(t), nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := uc.SearchTasks(context.Background(), q)
		if _, ok := domain.AsValidationError(err); !ok {
			t.Fatalf("SearchTasks(%q) err=%v, want *ValidationError", q, err)
		}
	}
}

func TestSearchTasks_ZeroMatchesIsNotFound(t *testing.T) {
	repo := untouchedRepo(t)
	repo.searchFn = func(ctx context.Context, query string) ([]domain.Task, error) {
		return nil, nil
	}

	uc := New(repo, nil)
	_, err := uc.SearchTasks(context.Background(), "zzz-no-match")
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("SearchTasks() err=%v, want NOT_FOUND on zero matches", err)
	}
	if !strings.Contains(err.Error(), "zzz-no-match") {
		t.Fatalf("err=%q, want it to name the query", err)
	}
}

func TestSearchTasks_TrimsQuery(t *testing.T) {
	repo := untouchedRepo(t)
	repo.searchFn = func(ctx context.Context, query string) ([]domain.Task, error) {
		if query != "documentation" {
			t.Fatalf("query=%q, want trimmed %q", query, "documentation")
		}
		return []domain.Task{{Title: "API Documentation"}}, nil
	}

	uc := New(repo, nil)
	tasks, err := uc.SearchTasks(context.Background(), "  documentation  ")
	if err != nil {
		t.Fatalf("SearchTasks() err=%v, want nil", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(tasks)=%d, want 1", len(tasks))
	}
}
