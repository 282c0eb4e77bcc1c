package entity

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

type Task struct {
	ID          string
	Description string
	Plan        string
	Status      TaskStatus
}

// TaskResult carries the validated final answer: a JSON array of mixed
// scalars (numbers, strings, data-URI images) decoded into []any.
type TaskResult struct {
	TaskID      string
	FinalAnswer []any
	Iterations  int
}
