package types

import "fmt"

// TaskRecord is the JSON shape of a task exchanged with the persistence endpoint.
type TaskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Color     string `json:"color"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToTask parses the wire timestamps and returns the in-memory task.
func (r TaskRecord) ToTask() (Task, error) {
	createdAt, err := ParseTime(r.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: createdAt: %w", r.ID, err)
	}
	updatedAt, err := ParseTime(r.UpdatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: updatedAt: %w", r.ID, err)
	}
	return Task{
		ID:        r.ID,
		Title:     r.Title,
		Color:     Color(r.Color),
		Completed: r.Completed,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// ToTasks converts a list of records, stopping at the first bad timestamp.
func ToTasks(records []TaskRecord) ([]Task, error) {
	tasks := make([]Task, 0, len(records))
	for _, r := range records {
		t, err := r.ToTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
