// Package types defines the task model shared by the store, the remote client
// and the persistence endpoint.
//
// Two shapes of a task exist:
//
//	types.Task        // in-memory form, timestamps as time.Time
//	types.TaskRecord  // wire form, timestamps as ISO-8601 strings
//
// Convert between them with ToRecord and TaskRecord.ToTask:
//
//	rec := task.ToRecord()
//	task, err := rec.ToTask()
//
// # Colors
//
// Every task carries one of eight fixed colors:
//
//	types.Red, types.Orange, types.Yellow, types.Green,
//	types.Blue, types.Purple, types.Pink, types.Brown
//
// Use ParseColor to turn user input into a Color and Color.Name for a display label:
//
//	c, err := types.ParseColor("blue")
//	fmt.Println(c.Name()) // "Blue"
package types
