package redis

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskify/backend/domain"
	"github.com/taskify/backend/repository"
)

type taskCache struct {
	inner  repository.TaskRepository
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewTaskCache wraps a TaskRepository with a read-through Redis cache for
// single-document lookups. Collection reads always hit the store, and cache
// failures are never surfaced: a broken cache degrades to the inner
// repository, it does not take the API down.
func NewTaskCache(inner repository.TaskRepository, client *redislib.Client, ttl time.Duration) repository.TaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &taskCache{
		inner:  inner,
		client: client,
		prefix: "task:",
		ttl:    ttl,
	}
}

func (c *taskCache) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	created, err := c.inner.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	c.store(ctx, created)
	return created, nil
}

func (c *taskCache) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if raw, err := c.client.Get(ctx, c.key(id)).Result(); err == nil {
		var task domain.Task
		if err := json.Unmarshal([]byte(raw), &task); err == nil {
			return &task, nil
		}
	}

	task, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, task)
	return task, nil
}

func (c *taskCache) List(ctx context.Context) ([]domain.Task, error) {
	return c.inner.List(ctx)
}

func (c *taskCache) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	return c.inner.ListByStatus(ctx, status)
}

func (c *taskCache) Search(ctx context.Context, query string) ([]domain.Task, error) {
	return c.inner.Search(ctx, query)
}

func (c *taskCache) UpdateFields(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	updated, err := c.inner.UpdateFields(ctx, id, patch)
	if err != nil {
		c.invalidate(ctx, id)
		return nil, err
	}
	c.store(ctx, updated)
	return updated, nil
}

func (c *taskCache) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *taskCache) store(ctx context.Context, task *domain.Task) {
	if task == nil || task.ID == "" {
		return
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(task.ID), payload, c.ttl).Err()
}

func (c *taskCache) invalidate(ctx context.Context, id string) {
	_ = c.client.Del(ctx, c.key(id)).Err()
}

func (c *taskCache) key(id string) string {
	return c.prefix + id
}
