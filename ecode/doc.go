// Package ecode defines the error codes carried in API error payloads and the
// error types surfaced by the task client and store.
//
// # Error Code Convention
//
//   - 0: Success (OK)
//   - -200 to -299: Request validation errors
//   - -300 to -399: Resource errors
//   - -500+: Server errors
//
// Retrieve a human-readable message or the matching HTTP status:
//
//	msg := ecode.Text(ecode.NothingFound)      // "Resource not found"
//	status := ecode.ToHTTPStatus(ecode.ParamErr) // 400
//
// # Error Types
//
// Three error types cover every failure a caller can see:
//
//	*ecode.ValidationError // input rejected before any request was sent
//	*ecode.RequestFailed   // the server answered with an error status
//	*ecode.TransportError  // the request never completed or the body was unreadable
//
// Match them with errors.As:
//
//	var rf *ecode.RequestFailed
//	if errors.As(err, &rf) {
//	    fmt.Println(rf.StatusCode, rf.Message)
//	}
package ecode
