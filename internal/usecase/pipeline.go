package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/ports"
)

// PipelineDeps wires all driven adapters into the ingestion pipeline.
type PipelineDeps struct {
	Feeds      []string
	Fetcher    ports.FeedFetcher
	Repository ports.ArticleRepository
	Classifier ports.Classifier
	Logger     *slog.Logger
}

// Pipeline implements the two units of work of the ingestion-and-
// classification flow. Both passes are independently triggerable and safe
// to re-run; neither is transactional with respect to the other, so a
// classify pass running mid-fetch only sees the committed subset. New
// articles it missed stay unclassified until the next classify pass.
type Pipeline struct {
	feeds      []string
	fetcher    ports.FeedFetcher
	repository ports.ArticleRepository
	classifier ports.Classifier
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		feeds:      deps.Feeds,
		fetcher:    deps.Fetcher,
		repository: deps.Repository,
		classifier: deps.Classifier,
		logger:     deps.Logger,
	}
}

// RunFetch pulls every configured feed, normalizes the entries into article
// records, and stores the whole batch in one bulk insert with category
// unset. A failed feed is logged and skipped; it never aborts the batch.
// A failed bulk insert does abort: the error propagates to the caller.
func (p *Pipeline) RunFetch(ctx context.Context) error {
	if p.fetcher == nil {
		return nil
	}

	var batch []domain.Article
	for _, url := range p.feeds {
		entries, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			p.logger.Error("fetch feed failed", "url", url, "error", err)
			continue
		}

		for _, entry := range entries {
			batch = append(batch, domain.Article{
				Title:     entry.Title,
				Content:   entry.Body,
				PubDate:   time.Now().UTC(),
				SourceURL: entry.Link,
			})
		}
	}

	if err := p.repository.CreateMany(ctx, batch); err != nil {
		return fmt.Errorf("store articles: %w", err)
	}

	p.logger.Info("stored articles", "count", len(batch))
	return nil
}

// RunClassify loads every unclassified article, assigns each a label, and
// commits all updates in one transaction.
func (p *Pipeline) RunClassify(ctx context.Context) error {
	if p.classifier == nil {
		return nil
	}

	articles, err := p.repository.FindUnclassified(ctx)
	if err != nil {
		return fmt.Errorf("load unclassified: %w", err)
	}

	for i := range articles {
		label := p.classifier.Classify(articles[i].Content)
		articles[i].Category = &label
	}

	if err := p.repository.CommitUpdates(ctx, articles); err != nil {
		return fmt.Errorf("commit categories: %w", err)
	}

	p.logger.Info("classified articles", "count", len(articles))
	return nil
}
