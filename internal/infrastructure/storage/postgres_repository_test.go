package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsClassifier/internal/domain"
)

func TestEnsureCreatesTable(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.Ensure(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateManyBulkInsert(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	articles := []domain.Article{
		{Title: "First", Content: "quake", PubDate: now, SourceURL: "http://x/1"},
		{Title: "Second", Content: "", PubDate: now, SourceURL: "http://x/2"},
	}

	mock.ExpectExec("INSERT INTO articles").
		WithArgs("First", "quake", now, "http://x/1", "Second", "", now, "http://x/2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.CreateMany(context.Background(), articles))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateManyEmptyBatchIsNoop(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.CreateMany(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateManyWrapsStorageError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO articles").
		WillReturnError(errors.New("connection reset"))

	repo := NewPostgresRepository(db)
	err = repo.CreateMany(context.Background(), []domain.Article{{Title: "t", PubDate: time.Now()}})
	require.Error(t, err)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "bulk insert", storageErr.Op)
}

func TestFindUnclassified(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "pub_date", "source_url", "category"}).
		AddRow(int64(1), "First", "quake", now, "http://x/1", nil).
		AddRow(int64(2), "Second", "", now, "http://x/2", nil)

	mock.ExpectQuery("SELECT id, title, content, pub_date, source_url, category FROM articles WHERE category IS NULL").
		WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	articles, err := repo.FindUnclassified(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)

	for _, a := range articles {
		assert.Nil(t, a.Category)
	}
	assert.Equal(t, int64(1), articles[0].ID)
	assert.Equal(t, "First", articles[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllIncludesClassified(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "pub_date", "source_url", "category"}).
		AddRow(int64(1), "First", "quake", now, "http://x/1", "Natural Disasters").
		AddRow(int64(2), "Second", "", now, "http://x/2", nil)

	mock.ExpectQuery("SELECT id, title, content, pub_date, source_url, category FROM articles ORDER BY id").
		WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	articles, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)

	require.NotNil(t, articles[0].Category)
	assert.Equal(t, "Natural Disasters", *articles[0].Category)
	assert.Nil(t, articles[1].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitUpdatesOnlyWhereStillUnset(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	label := "Natural Disasters"
	fallback := "Others"
	articles := []domain.Article{
		{ID: 1, Category: &label},
		{ID: 2, Category: nil}, // skipped: nothing to persist
		{ID: 3, Category: &fallback},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE articles SET category = (.+) WHERE id = (.+) AND category IS NULL").
		WithArgs(label, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE articles SET category = (.+) WHERE id = (.+) AND category IS NULL").
		WithArgs(fallback, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.CommitUpdates(context.Background(), articles))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitUpdatesRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	label := "Others"
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE articles SET category").
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	repo := NewPostgresRepository(db)
	err = repo.CommitUpdates(context.Background(), []domain.Article{{ID: 1, Category: &label}})
	require.Error(t, err)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
