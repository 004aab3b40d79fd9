// Package store holds the task collection and keeps it in step with the remote
// task service. Every mutation performs exactly one request and changes local
// state only after the request succeeds.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/types"
)

// TaskService is the remote side of the store. *client.Client implements it.
type TaskService interface {
	List(ctx context.Context) ([]types.Task, error)
	Create(ctx context.Context, title string, color types.Color) (types.Task, error)
	Update(ctx context.Context, id, title string, color types.Color) (types.Task, error)
	Toggle(ctx context.Context, id string) (types.Task, error)
	Delete(ctx context.Context, id string) error
}

// State is a snapshot of the store.
type State struct {
	Tasks   []types.Task
	Loading bool
}

// Observer is notified after every state change.
type Observer interface {
	OnChange(State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(State)

// OnChange calls f(s).
func (f ObserverFunc) OnChange(s State) { f(s) }

type subscription struct {
	id       int
	observer Observer
}

// Store is the task collection. It is safe for concurrent use; locks are never held
// across a request, so concurrent mutations resolve in response order.
type Store struct {
	svc    TaskService
	logger *logger.Logger

	mu      sync.RWMutex
	tasks   []types.Task
	loading bool

	obsMu     sync.Mutex
	observers []subscription
	nextObsID int
}

// New creates an empty store in the loading state.
func New(svc TaskService, l *logger.Logger) *Store {
	if l == nil {
		l = logger.StdLogger()
	}
	return &Store{
		svc:     svc,
		logger:  l,
		tasks:   []types.Task{},
		loading: true,
	}
}

// Load fetches every task and replaces the collection. On failure the error is
// logged and returned and the collection is left as it was. Loading is false afterwards
// in both cases.
func (s *Store) Load(ctx context.Context) error {
	s.setLoading(true)

	tasks, err := s.svc.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load tasks", "error", err)
		s.setLoading(false)
		return err
	}

	tasks = dedupe(tasks)
	s.mu.Lock()
	s.tasks = tasks
	s.loading = false
	s.mu.Unlock()
	s.notify()
	return nil
}

// Add creates a task remotely and appends the returned task.
// Input is not validated here; callers validate first.
func (s *Store) Add(ctx context.Context, title string, color types.Color) (types.Task, error) {
	task, err := s.svc.Create(ctx, title, color)
	if err != nil {
		s.logger.Error(ctx, "failed to add task", "error", err)
		return types.Task{}, err
	}

	s.mu.Lock()
	if i := s.indexOf(task.ID); i >= 0 {
		s.tasks[i] = task
	} else {
		s.tasks = append(s.tasks, task)
	}
	s.mu.Unlock()
	s.notify()
	return task, nil
}

// Update changes title and color of task id remotely and stores the server's version.
func (s *Store) Update(ctx context.Context, id, title string, color types.Color) (types.Task, error) {
	task, err := s.svc.Update(ctx, id, title, color)
	if err != nil {
		s.logger.Error(ctx, "failed to update task", "id", id, "error", err)
		return types.Task{}, err
	}
	s.replace(task)
	return task, nil
}

// ToggleCompletion flips the completion flag of task id remotely and stores the server's version.
func (s *Store) ToggleCompletion(ctx context.Context, id string) (types.Task, error) {
	task, err := s.svc.Toggle(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "failed to toggle task", "id", id, "error", err)
		return types.Task{}, err
	}
	s.replace(task)
	return task, nil
}

// Remove deletes task id remotely, then locally.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to remove task", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.tasks = slices.Delete(s.tasks, i, i+1)
	}
	s.mu.Unlock()
	if i >= 0 {
		s.notify()
	}
	return nil
}

// FindByID looks up a task in local state.
func (s *Store) FindByID(id string) (types.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return types.Task{}, false
}

// Tasks returns a copy of the collection.
func (s *Store) Tasks() []types.Task {
	return s.State().Tasks
}

// Loading reports whether the initial fetch is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// State returns a snapshot of the collection and loading flag.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Tasks: slices.Clone(s.tasks), Loading: s.loading}
}

// Subscribe registers o for change notifications and returns a func that removes it.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, subscription{id: id, observer: o})
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool { return sub.id == id })
			s.obsMu.Unlock()
		})
	}
}

// replace swaps in the server's version of a task. A task no longer held locally is ignored.
func (s *Store) replace(task types.Task) {
	s.mu.Lock()
	i := s.indexOf(task.ID)
	if i >= 0 {
		s.tasks[i] = task
	}
	s.mu.Unlock()
	if i >= 0 {
		s.notify()
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	changed := s.loading != v
	s.loading = v
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t types.Task) bool { return t.ID == id })
}

// notify calls observers in subscription order with a fresh snapshot, outside all locks.
func (s *Store) notify() {
	s.obsMu.Lock()
	subs := slices.Clone(s.observers)
	s.obsMu.Unlock()
	if len(subs) == 0 {
		return
	}

	state := s.State()
	for _, sub := range subs {
		sub.observer.OnChange(State{Tasks: slices.Clone(state.Tasks), Loading: state.Loading})
	}
}

// dedupe keeps one task per id, the last one received, at its first position.
func dedupe(tasks []types.Task) []types.Task {
	out := make([]types.Task, 0, len(tasks))
	pos := make(map[string]int, len(tasks))
	for _, t := range tasks {
		if i, ok := pos[t.ID]; ok {
			out[i] = t
			continue
		}
		pos[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}
