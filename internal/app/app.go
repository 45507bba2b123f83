package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"NewsClassifier/internal/classify"
	"NewsClassifier/internal/config"
	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/export"
	"NewsClassifier/internal/infrastructure/feed"
	"NewsClassifier/internal/infrastructure/queue"
	"NewsClassifier/internal/infrastructure/scheduler"
	"NewsClassifier/internal/infrastructure/storage"
	"NewsClassifier/internal/logging"
	"NewsClassifier/internal/taxonomy"
	"NewsClassifier/internal/usecase"
	pkglogger "NewsClassifier/pkg/logger"
)

// Application wires config to adapters, use cases, and lifecycle. All shared
// state (db handle, queue connection, taxonomy) is built here once and passed
// down explicitly; nothing lives in package-level singletons.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	db         *sql.DB
	queue      *queue.RedisQueue
	repository *storage.PostgresRepository
	pipeline   *usecase.Pipeline
	registry   *usecase.Registry
	beat       *scheduler.CronScheduler
}

// New builds a runnable application instance. The taxonomy is expanded once
// here and reused for every classification within the process lifetime.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repository := storage.NewPostgresRepository(db)
	fetcher := feed.NewFetcher(nil, baseLogger.With("component", "fetcher"))
	classifier := classify.New(taxonomy.Build())

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Feeds:      cfg.Feeds,
		Fetcher:    fetcher,
		Repository: repository,
		Classifier: classifier,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	taskQueue := queue.NewRedisQueue(cfg.Redis.Addr, cfg.Redis.Queue)

	registry := usecase.NewRegistry()
	registry.Register(domain.TaskFetch, pipeline.RunFetch)
	registry.Register(domain.TaskClassify, pipeline.RunClassify)

	beat := scheduler.NewCronScheduler(
		taskQueue,
		cfg.Scheduler.FetchCron,
		cfg.Scheduler.ClassifyCron,
		baseLogger.With("component", "beat"),
	)

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		db:         db,
		queue:      taskQueue,
		repository: repository,
		pipeline:   pipeline,
		registry:   registry,
		beat:       beat,
	}, nil
}

// RunWorker bootstraps the schema and consumes tasks until ctx is cancelled.
func (a *Application) RunWorker(ctx context.Context) error {
	if err := a.repository.Ensure(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	worker := usecase.NewWorker(a.queue, a.registry, a.logger.With("component", "worker"))
	return worker.Run(ctx)
}

// RunBeat starts the cron enqueuer and blocks until ctx is cancelled.
func (a *Application) RunBeat(ctx context.Context) error {
	if err := a.beat.Start(ctx); err != nil {
		return fmt.Errorf("start beat: %w", err)
	}

	<-ctx.Done()
	return a.beat.Stop(context.Background())
}

// Trigger enqueues one fetch task and one classify task, fire-and-forget.
func (a *Application) Trigger(ctx context.Context) error {
	for _, name := range []string{domain.TaskFetch, domain.TaskClassify} {
		if err := a.queue.Enqueue(ctx, domain.NewTask(name)); err != nil {
			return fmt.Errorf("trigger %s: %w", name, err)
		}
		a.logger.Info("task enqueued", "task", name)
	}
	return nil
}

// Export writes the full article table as pretty-printed JSON to path.
func (a *Application) Export(ctx context.Context, path string) error {
	exporter := export.NewExporter(a.repository, pkglogger.New("export"))
	return exporter.WriteSnapshot(ctx, path)
}

// Close releases the queue connection and the database handle.
func (a *Application) Close() error {
	return errors.Join(a.queue.Close(), a.db.Close())
}
