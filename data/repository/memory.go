package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/types"
)

type memoryRepository struct {
	mu    sync.RWMutex
	tasks []types.Task
	options
}

// NewMemory creates a process-local repository. Contents are lost on exit.
func NewMemory(opts ...Option) TaskRepository {
	return &memoryRepository{options: newOptions(opts)}
}

func (r *memoryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.tasks, func(t types.Task) bool { return t.ID == id })
}

func (r *memoryRepository) List(_ context.Context) ([]types.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]types.Task, 0, len(r.tasks)), r.tasks...), nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (types.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return types.Task{}, ecode.ErrNotFound
	}
	return r.tasks[i], nil
}

func (r *memoryRepository) Create(_ context.Context, title string, color types.Color) (types.Task, error) {
	t := r.newTask(title, color)
	r.mu.Lock()
	r.tasks = append(r.tasks, t)
	r.mu.Unlock()
	return t, nil
}

func (r *memoryRepository) Update(_ context.Context, id, title string, color types.Color) (types.Task, error) {
	return r.modify(id, func(t types.Task) types.Task { return r.edit(t, title, color) })
}

func (r *memoryRepository) Toggle(_ context.Context, id string) (types.Task, error) {
	return r.modify(id, r.toggle)
}

func (r *memoryRepository) modify(id string, fn func(types.Task) types.Task) (types.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return types.Task{}, ecode.ErrNotFound
	}
	r.tasks[i] = fn(r.tasks[i])
	return r.tasks[i], nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ecode.ErrNotFound
	}
	r.tasks = slices.Delete(r.tasks, i, i+1)
	return nil
}
