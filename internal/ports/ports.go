package ports

import (
	"context"

	"newsingest/internal/domain"
)

// HeadlineSource lists candidate articles for a category from the upstream
// news provider.
type HeadlineSource interface {
	ListLatest(ctx context.Context, category, country string) ([]domain.Headline, error)
}

// PageScraper extracts the full article body text for a URL.
type PageScraper interface {
	FetchBody(ctx context.Context, url string) (string, error)
}

// Summarizer generates a bulleted summary of cleaned article text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ArticleStore is keyed document storage with existence checks, merge-style
// partial writes, and field-level queries.
type ArticleStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	Upsert(ctx context.Context, id string, patch domain.ArticlePatch) error
	ListByStatus(ctx context.Context, status domain.ProcessingStatus, limit int) ([]domain.Article, error)
	MissingKeywords(ctx context.Context, fn func(domain.Article) error) error
	UpdateKeywordsBatch(ctx context.Context, updates map[string][]string) error
}
