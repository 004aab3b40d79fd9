package types

import "time"

// Task is the in-memory representation of a task.
type Task struct {
	ID        string
	Title     string
	Color     Color
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToRecord converts the task to its wire form.
func (t Task) ToRecord() TaskRecord {
	return TaskRecord{
		ID:        t.ID,
		Title:     t.Title,
		Color:     string(t.Color),
		Completed: t.Completed,
		CreatedAt: FormatTime(t.CreatedAt),
		UpdatedAt: FormatTime(t.UpdatedAt),
	}
}

// TaskBody is the payload of create and update requests.
type TaskBody struct {
	Title string `json:"title"`
	Color string `json:"color"`
}
