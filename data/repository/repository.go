// Package repository persists tasks behind the persistence endpoint.
package repository

import (
	"context"
	"time"

	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/nanoid"
	"github.com/ncobase/tasklist/types"
)

// TaskRepository defines the interface for task data operations.
// Lookups of unknown ids fail with ecode.ErrNotFound.
type TaskRepository interface {
	List(ctx context.Context) ([]types.Task, error)
	GetByID(ctx context.Context, id string) (types.Task, error)
	Create(ctx context.Context, title string, color types.Color) (types.Task, error)
	Update(ctx context.Context, id, title string, color types.Color) (types.Task, error)
	Toggle(ctx context.Context, id string) (types.Task, error)
	Delete(ctx context.Context, id string) error
}

// Option configures a repository.
type Option func(*options)

type options struct {
	now    func() time.Time
	newID  func() string
	logger *logger.Logger
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator replaces the nanoid generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithLogger sets the logger used for repository errors.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		newID:  nanoid.PrimaryKey,
		logger: logger.StdLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newTask builds a task as created now: fresh id, not completed, both timestamps equal.
func (o options) newTask(title string, color types.Color) types.Task {
	now := o.now().UTC()
	return types.Task{
		ID:        o.newID(),
		Title:     title,
		Color:     color,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// touch returns the next updatedAt for a task last updated at prev. It never goes backwards.
func (o options) touch(prev time.Time) time.Time {
	return types.Later(o.now().UTC(), prev)
}

func (o options) edit(t types.Task, title string, color types.Color) types.Task {
	t.Title = title
	t.Color = color
	t.UpdatedAt = o.touch(t.UpdatedAt)
	return t
}

func (o options) toggle(t types.Task) types.Task {
	t.Completed = !t.Completed
	t.UpdatedAt = o.touch(t.UpdatedAt)
	return t
}
