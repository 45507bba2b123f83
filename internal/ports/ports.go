package ports

import (
	"context"

	"NewsClassifier/internal/domain"
)

// FeedFetcher pulls one feed document and returns its entries.
// A failed feed reports an error; it never panics the batch.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.FeedEntry, error)
}

// ArticleRepository is the CRUD boundary around the article table.
type ArticleRepository interface {
	Ensure(ctx context.Context) error
	CreateMany(ctx context.Context, articles []domain.Article) error
	FindUnclassified(ctx context.Context) ([]domain.Article, error)
	CommitUpdates(ctx context.Context, articles []domain.Article) error
	FindAll(ctx context.Context) ([]domain.Article, error)
}

// Classifier maps raw article text to exactly one category label.
type Classifier interface {
	Classify(content string) string
}

// TaskQueue dispatches fire-and-forget units of work.
// Dequeue returns ok=false when the poll window elapsed with no task.
type TaskQueue interface {
	Enqueue(ctx context.Context, task domain.Task) error
	Dequeue(ctx context.Context) (task domain.Task, ok bool, err error)
	Close() error
}

// Scheduler controls the recurring task enqueuer.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
