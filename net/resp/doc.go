// Package resp writes the JSON bodies of the task endpoint.
//
// Successful responses carry the resource itself:
//
//	resp.Success(w, tasks)                          // 200 [...]
//	resp.WithStatusCode(w, http.StatusCreated, t)   // 201 {...}
//	resp.NoContent(w)                               // 204
//
// Failures carry an Exception:
//
//	{"code": -300, "message": "task does not exist"}
//
//	resp.Fail(w, resp.NotFound(ecode.NotExist("task")))
//	resp.Fail(w, resp.BadRequest("Title is required"))
//	resp.Fail(w, resp.FromError(err)) // maps ecode errors to 400/404/500
package resp
