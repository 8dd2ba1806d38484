package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/taskify/backend/domain"
	"github.com/taskify/backend/repository"
)

// Store is an embedded bbolt-backed task repository for single-node setups.
// Tasks are stored as JSON documents keyed by id; every mutation runs inside
// one bolt transaction, which gives the per-document atomicity the contract
// requires.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

var _ repository.TaskRepository = (*Store)(nil)

// Open initializes the bolt file and ensures the tasks bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storeErr(err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, storeErr(err)
	}

	bucket := []byte("tasks")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, storeErr(err)
	}

	return &Store{db: db, bucket: bucket}, nil
}

func (s *Store) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = domain.NewID()
	}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		return putTask(tx.Bucket(s.bucket), task)
	}); err != nil {
		return nil, storeErr(err)
	}
	return task, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task *domain.Task
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		task, err = getTask(tx.Bucket(s.bucket), id)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return task, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	return s.scan(func(domain.Task) bool { return true })
}

func (s *Store) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	return s.scan(func(t domain.Task) bool { return t.Status == status })
}

func (s *Store) Search(ctx context.Context, query string) ([]domain.Task, error) {
	needle := strings.ToLower(query)
	return s.scan(func(t domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
	})
}

func (s *Store) UpdateFields(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var task *domain.Task
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		var err error
		task, err = getTask(b, id)
		if err != nil {
			return err
		}
		patch.Apply(task)
		task.UpdatedAt = time.Now().UTC()
		return putTask(b, task)
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return task, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(id)) == nil {
			return domain.ErrTaskNotFound
		}
		return b.Delete([]byte(id))
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// Ping verifies the database file is still readable, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	err := s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return bolt.ErrBucketNotFound
		}
		return nil
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// Close closes the underlying bolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) scan(match func(domain.Task) bool) ([]domain.Task, error) {
	var tasks []domain.Task
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				return err
			}
			if match(task) {
				tasks = append(tasks, task)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	// Keys are uuids, so cursor order is not insertion order; sort to the
	// same stable order the SQL driver returns.
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func getTask(b *bolt.Bucket, id string) (*domain.Task, error) {
	raw := b.Get([]byte(id))
	if raw == nil {
		return nil, domain.ErrTaskNotFound
	}
	var task domain.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, storeErr(err)
	}
	return &task, nil
}

func putTask(b *bolt.Bucket, task *domain.Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return b.Put([]byte(task.ID), payload)
}

// storeErr classifies infrastructure failures as UNAVAILABLE while letting
// already-classified domain errors pass through untouched.
func storeErr(err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	return domain.WrapError(domain.ErrCodeUnavailable, "task store unavailable", err)
}
