package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/net/resp"
	"github.com/ncobase/tasklist/server/service"
	"github.com/ncobase/tasklist/types"
)

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	svc    *service.TaskService
	logger *logger.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc *service.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		logger: logger,
	}
}

func records(tasks []types.Task) []types.TaskRecord {
	out := make([]types.TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ToRecord())
	}
	return out
}

// failureActions names each operation in 500 responses.
var failureActions = map[string]string{
	"list":   "fetch tasks",
	"create": "create task",
	"update": "update task",
	"toggle": "toggle task",
	"delete": "delete task",
}

// fail logs unexpected errors and writes the mapped response.
func (h *TaskHandler) fail(c *gin.Context, op string, err error) {
	var verr *ecode.ValidationError
	switch {
	case errors.As(err, &verr):
		h.logger.Warn(c.Request.Context(), "invalid task input", "op", op, "error", err)
	case errors.Is(err, ecode.ErrNotFound):
		h.logger.Info(c.Request.Context(), "task not found", "op", op, "id", c.Param("id"))
	default:
		h.logger.Error(c.Request.Context(), "failed to "+op+" task", "error", err)
		resp.Fail(c.Writer, resp.InternalServer(ecode.FailedTo(failureActions[op])))
		return
	}
	resp.Fail(c.Writer, resp.FromError(err))
}

func (h *TaskHandler) bind(c *gin.Context) (*types.TaskBody, bool) {
	var body types.TaskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn(c.Request.Context(), "invalid request body", "error", err)
		resp.Fail(c.Writer, resp.BadRequest(ecode.Invalid("request body")))
		return nil, false
	}
	return &body, true
}

// List handles GET /tasks.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	resp.Success(c.Writer, records(tasks))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	body, ok := h.bind(c)
	if !ok {
		return
	}
	task, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, task.ToRecord())
}

// Update handles PUT /tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	body, ok := h.bind(c)
	if !ok {
		return
	}
	task, err := h.svc.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	resp.Success(c.Writer, task.ToRecord())
}

// Toggle handles PATCH /tasks/:id/toggle.
func (h *TaskHandler) Toggle(c *gin.Context) {
	task, err := h.svc.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "toggle", err)
		return
	}
	resp.Success(c.Writer, task.ToRecord())
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete", err)
		return
	}
	resp.NoContent(c.Writer)
}
