// Package storage persists articles in Postgres, keyed by URL-derived
// identity. Writes are merge-style: an upsert sets only the fields present
// in the patch, leaving others untouched.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"newsingest/internal/domain"
	"newsingest/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    id                TEXT PRIMARY KEY,
    url               TEXT NOT NULL DEFAULT '',
    title             TEXT NOT NULL DEFAULT '',
    description       TEXT NOT NULL DEFAULT '',
    category          TEXT NOT NULL DEFAULT '',
    published_at      TIMESTAMPTZ,
    raw_content       TEXT NOT NULL DEFAULT '',
    content           TEXT NOT NULL DEFAULT '',
    keywords          TEXT[],
    summary           TEXT NOT NULL DEFAULT '',
    processing_status TEXT NOT NULL DEFAULT 'pending',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS articles_status_idx ON articles (processing_status);`

const articleColumns = "id, url, title, description, category, published_at, raw_content, content, keywords, summary, processing_status, created_at, updated_at"

// PostgresStore implements ports.ArticleStore on a sql.DB.
type PostgresStore struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the articles table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Exists reports whether an identity is already stored.
func (s *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	query, args, err := psql.Select("1").From("articles").Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query exists: %w", err)
	}
	return true, nil
}

// Upsert merge-writes a patch under the given identity. New rows are created
// with the patch fields; existing rows have only the patch fields replaced,
// plus updated_at.
func (s *PostgresStore) Upsert(ctx context.Context, id string, patch domain.ArticlePatch) error {
	query, args, err := buildUpsert(id, patch)
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert article %s: %w", id, err)
	}
	return nil
}

func buildUpsert(id string, patch domain.ArticlePatch) (string, []interface{}, error) {
	columns := []string{"id"}
	values := []interface{}{id}
	assignments := make([]string, 0, 10)

	add := func(column string, value interface{}) {
		columns = append(columns, column)
		values = append(values, value)
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}

	if patch.URL != nil {
		add("url", *patch.URL)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.PublishedAt != nil {
		add("published_at", *patch.PublishedAt)
	}
	if patch.RawContent != nil {
		add("raw_content", *patch.RawContent)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Keywords != nil {
		add("keywords", pq.Array(patch.Keywords))
	}
	if patch.Summary != nil {
		add("summary", *patch.Summary)
	}
	if patch.Status != nil {
		add("processing_status", string(*patch.Status))
	}

	suffix := "ON CONFLICT (id) DO NOTHING"
	if len(assignments) > 0 {
		suffix = fmt.Sprintf("ON CONFLICT (id) DO UPDATE SET %s, updated_at = NOW()",
			strings.Join(assignments, ", "))
	}

	return psql.Insert("articles").Columns(columns...).Values(values...).Suffix(suffix).ToSql()
}

// ListByStatus returns up to limit articles in the given processing status,
// oldest first. An empty result is a normal "no work" signal.
func (s *PostgresStore) ListByStatus(ctx context.Context, status domain.ProcessingStatus, limit int) ([]domain.Article, error) {
	query, args, err := psql.Select(articleColumns).
		From("articles").
		Where(sq.Eq{"processing_status": string(status)}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query by status: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

// MissingKeywords streams articles lacking a keywords value through fn.
// An error from fn or from row iteration aborts the scan.
func (s *PostgresStore) MissingKeywords(ctx context.Context, fn func(domain.Article) error) error {
	query, args, err := psql.Select("id", "title", "description").
		From("articles").
		Where("keywords IS NULL").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build missing-keywords query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query missing keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var article domain.Article
		if err := rows.Scan(&article.ID, &article.Title, &article.Description); err != nil {
			return fmt.Errorf("scan article: %w", err)
		}
		if err := fn(article); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}

	return nil
}

// UpdateKeywordsBatch applies staged keyword updates in one transaction.
func (s *PostgresStore) UpdateKeywordsBatch(ctx context.Context, updates map[string][]string) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	for id, kw := range updates {
		query, args, err := psql.Update("articles").
			Set("keywords", pq.Array(kw)).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("build keywords update: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("update keywords for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func scanArticle(rows *sql.Rows) (domain.Article, error) {
	var (
		article     domain.Article
		publishedAt sql.NullTime
		keywords    []string
		status      string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := rows.Scan(
		&article.ID, &article.URL, &article.Title, &article.Description,
		&article.Category, &publishedAt, &article.RawContent, &article.Content,
		pq.Array(&keywords), &article.Summary, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Article{}, fmt.Errorf("scan article: %w", err)
	}

	if publishedAt.Valid {
		article.PublishedAt = publishedAt.Time
	}
	article.Keywords = keywords
	article.Status = domain.ProcessingStatus(status)
	article.CreatedAt = createdAt
	article.UpdatedAt = updatedAt

	return article, nil
}
