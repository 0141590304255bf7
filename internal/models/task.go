package models

// DateLayout is the format of Task.CreatedAt.
const DateLayout = "2006-01-02"

type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

// TaskPatch carries a partial update. A nil field is left untouched.
type TaskPatch struct {
	Title     *string
	Completed *bool
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply writes the present fields of p onto task.
func (p TaskPatch) Apply(task *Task) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

func NewStats(total, completed int) Stats {
	return Stats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
	}
}
