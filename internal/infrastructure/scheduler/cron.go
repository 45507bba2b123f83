package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/ports"
)

// CronScheduler enqueues the fetch and classify tasks on their cron
// expressions. It only produces envelopes; the worker does the actual work.
type CronScheduler struct {
	queue        ports.TaskQueue
	fetchSpec    string
	classifySpec string
	logger       *slog.Logger
	cron         *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a beat from two cron expressions.
func NewCronScheduler(queue ports.TaskQueue, fetchSpec, classifySpec string, log *slog.Logger) *CronScheduler {
	return &CronScheduler{
		queue:        queue,
		fetchSpec:    fetchSpec,
		classifySpec: classifySpec,
		logger:       log,
	}
}

// Start registers both schedules and begins ticking.
func (s *CronScheduler) Start(ctx context.Context) error {
	if s.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.fetchSpec, s.enqueue(ctx, domain.TaskFetch)); err != nil {
		return fmt.Errorf("schedule fetch: %w", err)
	}
	if _, err := c.AddFunc(s.classifySpec, s.enqueue(ctx, domain.TaskClassify)); err != nil {
		return fmt.Errorf("schedule classify: %w", err)
	}

	c.Start()
	s.cron = c
	return nil
}

// Stop halts the cron loop and waits for in-flight enqueues to finish.
func (s *CronScheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}

	done := s.cron.Stop().Done()
	s.cron = nil

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *CronScheduler) enqueue(ctx context.Context, name string) func() {
	return func() {
		if err := s.queue.Enqueue(ctx, domain.NewTask(name)); err != nil {
			s.logger.Error("enqueue failed", "task", name, "error", err)
			return
		}
		s.logger.Info("task enqueued", "task", name)
	}
}
