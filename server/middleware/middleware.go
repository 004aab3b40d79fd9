// Package middleware provides the gin middleware chain of the persistence endpoint.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/tasklist/ctxutil"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/logging/observes"
	"github.com/ncobase/tasklist/net/resp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Trace takes the trace id from the X-Trace-ID header, or creates one, and stores it
// on the request context and the response header.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		if traceID := c.GetHeader(ctxutil.TraceIDHeader); traceID != "" {
			ctx = ctxutil.SetTraceID(ctx, traceID)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		ctx = ctxutil.SetClientInfo(ctx, c.ClientIP(), c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Header(ctxutil.TraceIDHeader, traceID)
		c.Next()
	}
}

// Tracing starts a server span per request, continuing any W3C trace context sent by the caller.
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx, span := observes.StartSpan(ctx, c.Request.Method+" "+route,
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("trace_id", ctxutil.GetTraceID(ctx)),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		var err error
		if status >= http.StatusInternalServerError {
			err = fmt.Errorf("HTTP %d", status)
		}
		observes.EndSpan(span, err)
	}
}

// Logger logs one line per request.
func Logger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", method,
			"path", path,
			"status", status,
			"duration", time.Since(start).String(),
			"ip", ctxutil.GetClientIP(c.Request.Context()),
		}
		if ua := ctxutil.GetUserAgent(c.Request.Context()); ua != "" {
			kv = append(kv, "user_agent", ua)
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			kv = append(kv, "span_trace_id", sc.TraceID().String())
		}
		switch {
		case status >= http.StatusInternalServerError:
			l.Error(c.Request.Context(), "HTTP request", kv...)
		case status >= http.StatusBadRequest:
			l.Warn(c.Request.Context(), "HTTP request", kv...)
		default:
			l.Info(c.Request.Context(), "HTTP request", kv...)
		}
	}
}

// Recovery turns a handler panic into a 500 response and logs the stack.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.Error(c.Request.Context(), "panic recovered", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
				if !c.Writer.Written() {
					resp.Fail(c.Writer, resp.InternalServer("Internal server error"))
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
