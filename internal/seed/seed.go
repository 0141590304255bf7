// Package seed provides the tasks a fresh store starts with.
package seed

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

// Task is one entry of a seed file. An empty CreatedAt means the
// day the seed is applied.
type Task struct {
	Title     string `toml:"title"`
	Completed bool   `toml:"completed"`
	CreatedAt string `toml:"created_at"`
}

type file struct {
	Tasks []Task `toml:"tasks"`
}

// Defaults returns the two tasks every new store is seeded with.
func Defaults() []Task {
	return []Task{
		{Title: "Learn Go"},
		{Title: "Build a web app"},
	}
}

// LoadFile reads seed tasks from a TOML file of the form
//
//	[[tasks]]
//	title = "Learn Go"
//	completed = false
//	created_at = "2026-01-12"
func LoadFile(path string) ([]Task, error) {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in seed file: %v", undecoded)
	}

	for i, task := range f.Tasks {
		if task.Title == "" {
			return nil, fmt.Errorf("seed task %d: title is required", i)
		}
		if task.CreatedAt != "" {
			_, err = time.Parse(models.DateLayout, task.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("seed task %d: invalid created_at: %w", i, err)
			}
		}
	}
	return f.Tasks, nil
}

// Load returns the tasks of path, or Defaults when path is empty.
func Load(path string) ([]Task, error) {
	if path == "" {
		return Defaults(), nil
	}
	return LoadFile(path)
}
