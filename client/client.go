// Package client talks to the task persistence endpoint over its REST JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ncobase/tasklist/config"
	"github.com/ncobase/tasklist/ctxutil"
	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/logging/observes"
	"github.com/ncobase/tasklist/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Client is the remote task service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithLogger sets the logger used for transport failures.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for baseURL, e.g. http://localhost:3001/api.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger.StdLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client from the client config section.
func NewFromConfig(cfg *config.Client, l *logger.Logger) *Client {
	if cfg == nil {
		return New("", WithLogger(l))
	}
	return New(cfg.BaseURL, WithTimeout(cfg.Timeout), WithLogger(l))
}

// BaseURL returns the endpoint root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func taskPath(id string, suffix ...string) string {
	p := "/tasks/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// List fetches all tasks in persistence order.
func (c *Client) List(ctx context.Context) ([]types.Task, error) {
	var records []types.TaskRecord
	if err := c.do(ctx, "tasks.list", http.MethodGet, "/tasks", nil, &records); err != nil {
		return nil, err
	}
	return c.toTasks(ctx, "tasks.list", records)
}

// Create creates a task; the server assigns id and timestamps.
func (c *Client) Create(ctx context.Context, title string, color types.Color) (types.Task, error) {
	var rec types.TaskRecord
	body := types.TaskBody{Title: title, Color: string(color)}
	if err := c.do(ctx, "tasks.create", http.MethodPost, "/tasks", body, &rec); err != nil {
		return types.Task{}, err
	}
	return c.toTask(ctx, "tasks.create", rec)
}

// Update replaces the title and color of task id.
func (c *Client) Update(ctx context.Context, id, title string, color types.Color) (types.Task, error) {
	var rec types.TaskRecord
	body := types.TaskBody{Title: title, Color: string(color)}
	if err := c.do(ctx, "tasks.update", http.MethodPut, taskPath(id), body, &rec); err != nil {
		return types.Task{}, err
	}
	return c.toTask(ctx, "tasks.update", rec)
}

// Toggle flips the completion flag of task id.
func (c *Client) Toggle(ctx context.Context, id string) (types.Task, error) {
	var rec types.TaskRecord
	if err := c.do(ctx, "tasks.toggle", http.MethodPatch, taskPath(id, "toggle"), nil, &rec); err != nil {
		return types.Task{}, err
	}
	return c.toTask(ctx, "tasks.toggle", rec)
}

// Delete removes task id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "tasks.delete", http.MethodDelete, taskPath(id), nil, nil)
}

func (c *Client) toTask(ctx context.Context, op string, rec types.TaskRecord) (types.Task, error) {
	t, err := rec.ToTask()
	if err != nil {
		return types.Task{}, c.transportError(ctx, op, err)
	}
	return t, nil
}

func (c *Client) toTasks(ctx context.Context, op string, records []types.TaskRecord) ([]types.Task, error) {
	tasks, err := types.ToTasks(records)
	if err != nil {
		return nil, c.transportError(ctx, op, err)
	}
	return tasks, nil
}

func (c *Client) transportError(ctx context.Context, op string, err error) error {
	c.logger.Error(ctx, "task service request failed", "op", op, "error", err)
	return &ecode.TransportError{Op: op, Err: err}
}

// do sends one request and decodes a 2xx JSON body into out. A 204 or a nil out
// leaves out untouched.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	ctx, span := observes.StartSpan(ctx, op,
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)
	defer func() { observes.EndSpan(span, err) }()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return c.transportError(ctx, op, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.transportError(ctx, op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
		req.Header.Set(ctxutil.TraceIDHeader, traceID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, op, err)
	}
	defer func() { _ = res.Body.Close() }()
	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return requestFailed(res)
	}
	if res.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return c.transportError(ctx, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// errorPayload is the body of an error response. The endpoint sends message; older
// backends sent error.
type errorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func requestFailed(res *http.Response) *ecode.RequestFailed {
	rf := &ecode.RequestFailed{StatusCode: res.StatusCode}

	var payload errorPayload
	data, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if len(data) > 0 && json.Unmarshal(data, &payload) == nil {
		rf.Code = payload.Code
		switch {
		case payload.Message != "":
			rf.Message = payload.Message
		case payload.Error != "":
			rf.Message = payload.Error
		}
	}
	if rf.Message == "" {
		rf.Message = ecode.HTTPErrorMessage(res.StatusCode)
	}
	return rf
}
