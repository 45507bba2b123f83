package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"NewsClassifier/internal/domain"
)

type stubQueue struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (q *stubQueue) Dequeue(ctx context.Context) (domain.Task, bool, error) {
	q.mu.Lock()
	if len(q.tasks) == 0 {
		q.mu.Unlock()
		<-ctx.Done()
		return domain.Task{}, false, ctx.Err()
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	q.mu.Unlock()
	return task, true, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(domain.TaskFetch, func(ctx context.Context) error { return nil })

	if _, err := registry.Resolve(domain.TaskFetch); err != nil {
		t.Fatalf("expected registered task to resolve: %v", err)
	}
	if _, err := registry.Resolve("articles.unknown"); err == nil {
		t.Fatal("expected error for unknown task")
	}
}

func TestWorkerRunsQueuedTasks(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		runs []string
	)

	registry := NewRegistry()
	registry.Register(domain.TaskFetch, func(ctx context.Context) error {
		mu.Lock()
		runs = append(runs, domain.TaskFetch)
		mu.Unlock()
		return nil
	})
	registry.Register(domain.TaskClassify, func(ctx context.Context) error {
		mu.Lock()
		runs = append(runs, domain.TaskClassify)
		mu.Unlock()
		cancel()
		return nil
	})

	queue := &stubQueue{tasks: []domain.Task{
		domain.NewTask(domain.TaskFetch),
		domain.NewTask("articles.unknown"),
		domain.NewTask(domain.TaskClassify),
	}}

	done := make(chan error, 1)
	go func() {
		done <- NewWorker(queue, registry, discardLogger()).Run(ctx)
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(runs) != 2 || runs[0] != domain.TaskFetch || runs[1] != domain.TaskClassify {
		t.Fatalf("unexpected task runs: %v", runs)
	}
}

func TestWorkerLogsHandlerFailureAndContinues(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := NewRegistry()
	registry.Register(domain.TaskFetch, func(ctx context.Context) error {
		return errors.New("feed blew up")
	})
	registry.Register(domain.TaskClassify, func(ctx context.Context) error {
		cancel()
		return nil
	})

	queue := &stubQueue{tasks: []domain.Task{
		domain.NewTask(domain.TaskFetch),
		domain.NewTask(domain.TaskClassify),
	}}

	done := make(chan error, 1)
	go func() {
		done <- NewWorker(queue, registry, discardLogger()).Run(ctx)
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive a failing handler")
	}
}
