package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const createTableStmt = `CREATE TABLE IF NOT EXISTS articles (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    pub_date TIMESTAMPTZ NOT NULL,
    source_url TEXT NOT NULL DEFAULT '',
    category TEXT
)`

// Open connects to Postgres through lib/pq.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// PostgresRepository is the CRUD boundary around the article table.
// Every failure surfaces as a domain.StorageError; no retry happens here.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Ensure creates the articles table when it does not exist yet.
func (r *PostgresRepository) Ensure(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableStmt); err != nil {
		return &domain.StorageError{Op: "ensure schema", Err: err}
	}
	return nil
}

// CreateMany inserts the whole batch in a single multi-row statement,
// category unset on every record. An empty batch is a no-op.
func (r *PostgresRepository) CreateMany(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	builder := psql.Insert("articles").Columns("title", "content", "pub_date", "source_url")
	for _, a := range articles {
		builder = builder.Values(a.Title, a.Content, a.PubDate, a.SourceURL)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return &domain.StorageError{Op: "build insert", Err: err}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &domain.StorageError{Op: "bulk insert", Err: err}
	}
	return nil
}

// FindUnclassified returns a snapshot of every article without a category.
func (r *PostgresRepository) FindUnclassified(ctx context.Context) ([]domain.Article, error) {
	return r.find(ctx, psql.
		Select("id", "title", "content", "pub_date", "source_url", "category").
		From("articles").
		Where(sq.Eq{"category": nil}).
		OrderBy("id"))
}

// FindAll returns the full article table, classified or not.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]domain.Article, error) {
	return r.find(ctx, psql.
		Select("id", "title", "content", "pub_date", "source_url", "category").
		From("articles").
		OrderBy("id"))
}

func (r *PostgresRepository) find(ctx context.Context, builder sq.SelectBuilder) ([]domain.Article, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, &domain.StorageError{Op: "build select", Err: err}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "query articles", Err: err}
	}

	var articles []domain.Article
	for rows.Next() {
		var (
			a        domain.Article
			category sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.PubDate, &a.SourceURL, &category); err != nil {
			_ = rows.Close()
			return nil, &domain.StorageError{Op: "scan article", Err: err}
		}
		if category.Valid {
			a.Category = &category.String
		}
		articles = append(articles, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, &domain.StorageError{Op: "rows iteration", Err: rowsErr}
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, &domain.StorageError{Op: "close rows", Err: closeErr}
	}

	return articles, nil
}

// CommitUpdates persists mutated category fields in one transaction. Each
// update only lands where the category is still unset, so a concurrent
// classify pass cannot overwrite an already-assigned label. No other column
// is touched.
func (r *PostgresRepository) CommitUpdates(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "begin commit", Err: err}
	}

	for _, a := range articles {
		if a.Category == nil {
			continue
		}

		query, args, err := psql.
			Update("articles").
			Set("category", *a.Category).
			Where(sq.Eq{"id": a.ID}).
			Where("category IS NULL").
			ToSql()
		if err != nil {
			_ = tx.Rollback()
			return &domain.StorageError{Op: "build update", Err: err}
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return &domain.StorageError{Op: "update category", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "commit updates", Err: err}
	}
	return nil
}
