package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrDescriptionRequired = errors.New("description required")
	ErrNotFound            = errors.New("todo not found")
	ErrConnection          = errors.New("store connection failed")
	ErrWrite               = errors.New("store write failed")
)

// Repository is the persistence contract the dispatcher talks to.
type Repository interface {
	Add(ctx context.Context, description string) (Task, error)
	List(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, id int64, status bool) (Task, error)
	Delete(ctx context.Context, id int64) error
}

// InMemoryRepo keeps todos for the lifetime of the process only.
type InMemoryRepo struct {
	mu    sync.Mutex
	seq   int64
	store map[int64]Task
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		store: make(map[int64]Task),
	}
}

func (r *InMemoryRepo) Add(_ context.Context, description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, ErrDescriptionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	t := Task{
		ID:          r.seq,
		Description: description,
		Status:      false,
	}
	r.store[t.ID] = t
	return t, nil
}

func (r *InMemoryRepo) List(_ context.Context) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Task, 0, len(r.store))
	for _, t := range r.store {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepo) Update(_ context.Context, id int64, status bool) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.store[id]
	if !ok {
		return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	t.Status = status
	r.store[id] = t
	return t, nil
}

func (r *InMemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, id)
	return nil
}

func (r *InMemoryRepo) Close() error { return nil }

// Store is a Repository that holds resources until closed.
type Store interface {
	Repository
	Close() error
}

// OpenStore opens the store for driver. The memory driver ignores dsn.
func OpenStore(ctx context.Context, driver, dsn string) (Store, error) {
	if driver == DriverMemory {
		return NewInMemoryRepo(), nil
	}
	r, err := Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	return r, nil
}
