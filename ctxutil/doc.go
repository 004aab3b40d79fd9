// Package ctxutil carries request-scoped values, mainly the trace id that ties a
// client operation to the log lines the persistence endpoint writes for it.
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//	req.Header.Set(ctxutil.TraceIDHeader, traceID)
//
// Inside gin handlers the trace id is stored on both the request context and the
// *gin.Context, so either can be passed to the logger.
package ctxutil
