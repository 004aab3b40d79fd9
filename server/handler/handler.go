// Package handler provides the HTTP handlers of the persistence endpoint.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/server/service"
)

// HealthChecker reports backend health.
type HealthChecker interface {
	Health(ctx context.Context) map[string]any
}

// Handler aggregates all HTTP handlers.
type Handler struct {
	Task   *TaskHandler
	Health *HealthHandler
	logger *logger.Logger
}

// NewHandler creates a new handler instance with all sub-handlers initialized.
func NewHandler(svc *service.TaskService, health HealthChecker, logger *logger.Logger) *Handler {
	return &Handler{
		Task:   NewTaskHandler(svc, logger),
		Health: NewHealthHandler(health),
		logger: logger,
	}
}

// RegisterRoutes registers all HTTP routes on r, usually the /api group.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health.Get)

	tasks := r.Group("/tasks")
	{
		tasks.GET("", h.Task.List)
		tasks.POST("", h.Task.Create)
		tasks.PUT("/:id", h.Task.Update)
		tasks.DELETE("/:id", h.Task.Delete)
		tasks.PATCH("/:id/toggle", h.Task.Toggle)
	}
}
