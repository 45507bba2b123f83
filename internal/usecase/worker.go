package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsClassifier/internal/domain"
)

// dequeueRetryDelay keeps a broken queue connection from spinning the loop.
const dequeueRetryDelay = time.Second

// Worker consumes the task queue and runs each task through the registry.
// Tasks are fire-and-forget: a failing handler is logged and dropped,
// nothing travels back to whoever enqueued it.
type Worker struct {
	queue    dequeuer
	registry *Registry
	logger   *slog.Logger
}

// dequeuer is the narrow slice of the task queue the worker needs.
type dequeuer interface {
	Dequeue(ctx context.Context) (task domain.Task, ok bool, err error)
}

// NewWorker wires the queue with the handler registry.
func NewWorker(queue dequeuer, registry *Registry, log *slog.Logger) *Worker {
	return &Worker{queue: queue, registry: registry, logger: log}
}

// Run consumes tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		task, ok, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("dequeue failed", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(dequeueRetryDelay):
			}
			continue
		}
		if !ok {
			continue
		}

		handler, err := w.registry.Resolve(task.Name)
		if err != nil {
			w.logger.Error("unknown task", "task", task.Name, "id", task.ID)
			continue
		}

		w.logger.Info("task started", "task", task.Name, "id", task.ID)
		if err := handler(ctx); err != nil {
			w.logger.Error("task failed", "task", task.Name, "id", task.ID, "error", err)
			continue
		}
		w.logger.Info("task finished", "task", task.Name, "id", task.ID)
	}
}
