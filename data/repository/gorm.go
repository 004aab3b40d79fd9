package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/types"
	"gorm.io/gorm"
)

// taskModel is the tasks table row. Timestamps are Unix nanoseconds so every dialect
// round-trips them exactly and orders them numerically; the field names keep gorm's
// automatic CreatedAt/UpdatedAt handling out of the way.
type taskModel struct {
	ID          string `gorm:"primaryKey;size:32"`
	Title       string `gorm:"size:1024;not null"`
	Color       string `gorm:"size:16;not null"`
	Completed   bool   `gorm:"not null;default:false"`
	CreatedNano int64  `gorm:"column:created_at;not null;index"`
	UpdatedNano int64  `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for taskModel.
func (taskModel) TableName() string {
	return "tasks"
}

func toModel(t types.Task) taskModel {
	return taskModel{
		ID:          t.ID,
		Title:       t.Title,
		Color:       string(t.Color),
		Completed:   t.Completed,
		CreatedNano: t.CreatedAt.UnixNano(),
		UpdatedNano: t.UpdatedAt.UnixNano(),
	}
}

func (m taskModel) toTask() types.Task {
	return types.Task{
		ID:        m.ID,
		Title:     m.Title,
		Color:     types.Color(m.Color),
		Completed: m.Completed,
		CreatedAt: time.Unix(0, m.CreatedNano).UTC(),
		UpdatedAt: time.Unix(0, m.UpdatedNano).UTC(),
	}
}

type gormRepository struct {
	db *gorm.DB
	options
}

// NewGorm creates a repository on an open gorm handle (sqlite, postgres or mysql).
func NewGorm(db *gorm.DB, opts ...Option) TaskRepository {
	return &gormRepository{db: db, options: newOptions(opts)}
}

// Migrate creates or updates the tasks table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&taskModel{}); err != nil {
		return fmt.Errorf("failed to migrate tasks table: %w", err)
	}
	return nil
}

func (r *gormRepository) List(ctx context.Context) ([]types.Task, error) {
	var models []taskModel
	if err := r.db.WithContext(ctx).Order("created_at").Order("id").Find(&models).Error; err != nil {
		r.logger.Error(ctx, "failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]types.Task, 0, len(models))
	for _, m := range models {
		tasks = append(tasks, m.toTask())
	}
	return tasks, nil
}

func findTask(tx *gorm.DB, id string) (taskModel, error) {
	var m taskModel
	if err := tx.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taskModel{}, ecode.ErrNotFound
		}
		return taskModel{}, fmt.Errorf("failed to get task: %w", err)
	}
	return m, nil
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (types.Task, error) {
	m, err := findTask(r.db.WithContext(ctx), id)
	if err != nil {
		return types.Task{}, err
	}
	return m.toTask(), nil
}

func (r *gormRepository) Create(ctx context.Context, title string, color types.Color) (types.Task, error) {
	t := r.newTask(title, color)
	m := toModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		r.logger.Error(ctx, "failed to create task", "error", err)
		return types.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	r.logger.Debug(ctx, "task created", "id", t.ID)
	return t, nil
}

func (r *gormRepository) Update(ctx context.Context, id, title string, color types.Color) (types.Task, error) {
	return r.modify(ctx, id, func(t types.Task) types.Task { return r.edit(t, title, color) })
}

func (r *gormRepository) Toggle(ctx context.Context, id string) (types.Task, error) {
	return r.modify(ctx, id, r.toggle)
}

// modify reads, changes and writes one row inside a transaction.
func (r *gormRepository) modify(ctx context.Context, id string, fn func(types.Task) types.Task) (types.Task, error) {
	var t types.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findTask(tx, id)
		if err != nil {
			return err
		}
		t = fn(m.toTask())

		// a map so that completed=false is written too
		return tx.Model(&taskModel{}).Where("id = ?", id).Updates(map[string]any{
			"title":      t.Title,
			"color":      string(t.Color),
			"completed":  t.Completed,
			"updated_at": t.UpdatedAt.UnixNano(),
		}).Error
	})
	if errors.Is(err, ecode.ErrNotFound) {
		return types.Task{}, err
	}
	if err != nil {
		r.logger.Error(ctx, "failed to update task", "id", id, "error", err)
		return types.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return t, nil
}

func (r *gormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&taskModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		r.logger.Error(ctx, "failed to delete task", "id", id, "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ecode.ErrNotFound
	}
	return nil
}
