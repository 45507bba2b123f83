package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"NewsClassifier/internal/ports"
)

// record mirrors the historical export layout, key order included.
type record struct {
	ID        int64   `json:"ID"`
	Title     string  `json:"Title"`
	Content   string  `json:"Content"`
	PubDate   string  `json:"Pub Date"`
	SourceURL string  `json:"Source URL"`
	Category  *string `json:"Category"`
}

// Exporter writes a one-shot, read-only snapshot of the article table as a
// pretty-printed JSON array. It is a utility beside the pipeline, not part
// of it.
type Exporter struct {
	repository ports.ArticleRepository
	logger     *log.Logger
}

// NewExporter wires the article repository.
func NewExporter(repo ports.ArticleRepository, log *log.Logger) *Exporter {
	return &Exporter{repository: repo, logger: log}
}

// WriteSnapshot dumps every article to path.
func (e *Exporter) WriteSnapshot(ctx context.Context, path string) error {
	articles, err := e.repository.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load articles: %w", err)
	}

	records := make([]record, 0, len(articles))
	for _, a := range articles {
		records = append(records, record{
			ID:        a.ID,
			Title:     a.Title,
			Content:   a.Content,
			PubDate:   a.PubDate.Format(time.RFC3339),
			SourceURL: a.SourceURL,
			Category:  a.Category,
		})
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode articles: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if e.logger != nil {
		e.logger.Printf("exported %d articles to %s", len(records), path)
	}
	return nil
}
