package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/tasklist/net/resp"
	"github.com/ncobase/tasklist/version"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a health handler; checker may be nil.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Get reports service status, backend health and build version.
func (h *HealthHandler) Get(c *gin.Context) {
	body := map[string]any{
		"status":  "healthy",
		"version": version.GetVersionInfo(),
	}
	status := http.StatusOK
	if h.checker != nil {
		data := h.checker.Health(c.Request.Context())
		body["data"] = data
		if data["status"] != "healthy" {
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	resp.WithStatusCode(c.Writer, status, body)
}
