package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ncobase/tasklist/config"
	"github.com/ncobase/tasklist/ctxutil"
	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/types"
)

const (
	created = "2024-03-01T12:00:00Z"
	later   = "2024-03-01T12:05:00.5Z"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL+"/api/", WithLogger(logger.Discard()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListParsesTimestamps(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, []types.TaskRecord{
			{ID: "a", Title: "Buy milk", Color: "blue", CreatedAt: created, UpdatedAt: later},
			{ID: "b", Title: "Walk dog", Color: "brown", Completed: true, CreatedAt: created, UpdatedAt: created},
		})
	})

	tasks, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "a" || tasks[1].ID != "b" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	want := time.Date(2024, 3, 1, 12, 5, 0, 500_000_000, time.UTC)
	if !tasks[0].UpdatedAt.Equal(want) || tasks[0].Color != types.Blue {
		t.Errorf("unexpected first task %+v", tasks[0])
	}
	if !tasks[1].Completed {
		t.Errorf("expected second task completed")
	}
}

func TestListEmpty(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.TaskRecord{})
	})
	tasks, err := c.List(context.Background())
	if err != nil || len(tasks) != 0 {
		t.Fatalf("expected empty list, got %v %v", tasks, err)
	}
}

func TestCreateSendsBodyAndHeaders(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if got := r.Header.Get(ctxutil.TraceIDHeader); got != "trace-1" {
			t.Errorf("expected trace header, got %q", got)
		}
		var body types.TaskBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Title != "Buy milk" || body.Color != "blue" {
			t.Errorf("unexpected body %+v", body)
		}
		writeJSON(w, http.StatusCreated, types.TaskRecord{ID: "x1", Title: body.Title, Color: body.Color, CreatedAt: created, UpdatedAt: created})
	})

	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")
	task, err := c.Create(ctx, "Buy milk", types.Blue)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != "x1" || task.Completed {
		t.Errorf("unexpected task %+v", task)
	}
}

func TestUpdateToggleDeletePaths(t *testing.T) {
	var seen []string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.EscapedPath())
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPatch:
			if n, _ := io.Copy(io.Discard, r.Body); n != 0 {
				t.Errorf("expected no toggle body, got %d bytes", n)
			}
			writeJSON(w, http.StatusOK, types.TaskRecord{ID: "a b", Title: "t", Color: "red", Completed: true, CreatedAt: created, UpdatedAt: later})
		default:
			writeJSON(w, http.StatusOK, types.TaskRecord{ID: "a b", Title: "new", Color: "pink", CreatedAt: created, UpdatedAt: later})
		}
	})
	ctx := context.Background()

	if _, err := c.Update(ctx, "a b", "new", types.Pink); err != nil {
		t.Fatalf("update: %v", err)
	}
	toggled, err := c.Toggle(ctx, "a b")
	if err != nil || !toggled.Completed {
		t.Fatalf("toggle: %+v %v", toggled, err)
	}
	if err := c.Delete(ctx, "a b"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{"PUT /api/tasks/a%20b", "PATCH /api/tasks/a%20b/toggle", "DELETE /api/tasks/a%20b"}
	if len(seen) != len(want) {
		t.Fatalf("unexpected requests %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("request %d: expected %q, got %q", i, want[i], seen[i])
		}
	}
}

func TestRequestFailedMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		code    int
	}{
		{"message field", http.StatusInternalServerError, `{"code":-500,"message":"database down"}`, "database down", -500},
		{"error field", http.StatusInternalServerError, `{"error":"Failed to create task"}`, "Failed to create task", 0},
		{"empty body", http.StatusBadGateway, ``, "HTTP error, status 502", 0},
		{"not json", http.StatusServiceUnavailable, `<html>down</html>`, "HTTP error, status 503", 0},
		{"not found", http.StatusNotFound, `{"code":-300,"message":"task does not exist"}`, "task does not exist", -300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.Create(context.Background(), "Buy milk", types.Blue)

			var rf *ecode.RequestFailed
			if !errors.As(err, &rf) {
				t.Fatalf("expected RequestFailed, got %T %v", err, err)
			}
			if rf.StatusCode != tt.status || rf.Message != tt.message || rf.Code != tt.code {
				t.Errorf("unexpected error %+v", rf)
			}
			if err.Error() != tt.message {
				t.Errorf("expected Error() %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestTransportErrors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	c := New("http://"+addr+"/api", WithLogger(logger.Discard()))
	_, err = c.List(context.Background())
	if !ecode.IsTransport(err) {
		t.Fatalf("expected transport error for unreachable server, got %v", err)
	}
	var te *ecode.TransportError
	if errors.As(err, &te) && te.Op != "tasks.list" {
		t.Errorf("unexpected op %q", te.Op)
	}

	bad := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":`)
	})
	if _, err := bad.Toggle(context.Background(), "a"); !ecode.IsTransport(err) {
		t.Errorf("expected transport error for malformed body, got %v", err)
	}

	badTime := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.TaskRecord{ID: "a", CreatedAt: "yesterday", UpdatedAt: created})
	})
	if _, err := badTime.Toggle(context.Background(), "a"); !ecode.IsTransport(err) {
		t.Errorf("expected transport error for bad timestamp, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(release); ts.Close() })

	c := NewFromConfig(&config.Client{BaseURL: ts.URL, Timeout: 50 * time.Millisecond}, logger.Discard())
	if _, err := c.List(context.Background()); !ecode.IsTransport(err) {
		t.Errorf("expected transport error on timeout, got %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	if got := New("").BaseURL(); got != config.DefaultBaseURL {
		t.Errorf("expected default base url, got %q", got)
	}
	if got := New("http://x/api/").BaseURL(); got != "http://x/api" {
		t.Errorf("expected trailing slash trimmed, got %q", got)
	}
	if got := NewFromConfig(nil, nil).BaseURL(); got != config.DefaultBaseURL {
		t.Errorf("expected default base url for nil config, got %q", got)
	}
}
