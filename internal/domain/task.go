package domain

import (
	"time"

	"github.com/google/uuid"
)

// Names of the two units of work the queue carries.
const (
	TaskFetch    = "articles.fetch"
	TaskClassify = "articles.classify"
)

// Task is the fire-and-forget envelope placed on the task queue.
// No result travels back to the producer.
type Task struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewTask stamps a fresh envelope for the named unit of work.
func NewTask(name string) Task {
	return Task{
		ID:         uuid.NewString(),
		Name:       name,
		EnqueuedAt: time.Now().UTC(),
	}
}
