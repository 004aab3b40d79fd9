// Package service holds the business rules of the persistence endpoint.
package service

import (
	"context"
	"fmt"

	"github.com/ncobase/tasklist/data/repository"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/logging/observes"
	"github.com/ncobase/tasklist/types"
	"github.com/ncobase/tasklist/validator"
	"go.opentelemetry.io/otel/attribute"
)

// TaskService validates input and delegates to the repository.
type TaskService struct {
	repo   repository.TaskRepository
	logger *logger.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
	}
}

// checkBody validates the body with the form rules and returns the trimmed title and color.
func checkBody(body *types.TaskBody) (string, types.Color, error) {
	if body == nil {
		body = &types.TaskBody{}
	}
	form := &validator.TaskForm{Title: body.Title, Color: body.Color}
	if err := form.Validate(); err != nil {
		return "", "", err
	}
	return form.Title, types.Color(form.Color), nil
}

// List returns every task in creation order.
func (s *TaskService) List(ctx context.Context) (tasks []types.Task, err error) {
	ctx, span := observes.StartSpan(ctx, "service.tasks.list")
	defer func() { observes.EndSpan(span, err) }()

	return s.repo.List(ctx)
}

// Create validates the body and stores a new task.
func (s *TaskService) Create(ctx context.Context, body *types.TaskBody) (task types.Task, err error) {
	ctx, span := observes.StartSpan(ctx, "service.tasks.create")
	defer func() { observes.EndSpan(span, err) }()

	title, color, err := checkBody(body)
	if err != nil {
		return types.Task{}, err
	}
	task, err = s.repo.Create(ctx, title, color)
	if err != nil {
		return types.Task{}, err
	}
	s.logger.Info(ctx, "task created", "id", task.ID)
	return task, nil
}

// Update validates the body and replaces title and color of task id.
func (s *TaskService) Update(ctx context.Context, id string, body *types.TaskBody) (task types.Task, err error) {
	ctx, span := observes.StartSpan(ctx, "service.tasks.update", attribute.String("task.id", id))
	defer func() { observes.EndSpan(span, err) }()

	title, color, err := checkBody(body)
	if err != nil {
		return types.Task{}, err
	}
	task, err = s.repo.Update(ctx, id, title, color)
	if err != nil {
		return types.Task{}, fmt.Errorf("update %s: %w", id, err)
	}
	s.logger.Info(ctx, "task updated", "id", id)
	return task, nil
}

// Toggle flips the completion flag of task id.
func (s *TaskService) Toggle(ctx context.Context, id string) (task types.Task, err error) {
	ctx, span := observes.StartSpan(ctx, "service.tasks.toggle", attribute.String("task.id", id))
	defer func() { observes.EndSpan(span, err) }()

	task, err = s.repo.Toggle(ctx, id)
	if err != nil {
		return types.Task{}, fmt.Errorf("toggle %s: %w", id, err)
	}
	s.logger.Info(ctx, "task toggled", "id", id, "completed", task.Completed)
	return task, nil
}

// Delete removes task id.
func (s *TaskService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := observes.StartSpan(ctx, "service.tasks.delete", attribute.String("task.id", id))
	defer func() { observes.EndSpan(span, err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	s.logger.Info(ctx, "task deleted", "id", id)
	return nil
}
