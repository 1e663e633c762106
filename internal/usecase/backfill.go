package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"newsingest/internal/domain"
	"newsingest/internal/keywords"
	"newsingest/internal/ports"
)

// Backfill recomputes the keywords field for stored articles that lack it.
// A maintenance pass, run ad hoc; updates are committed in fixed-size
// batches so a crash mid-run leaves completed batches applied and the rest
// selectable by the next run.
type Backfill struct {
	store     ports.ArticleStore
	batchSize int
	logger    *slog.Logger
}

// NewBackfill constructs the backfill orchestrator.
func NewBackfill(store ports.ArticleStore, batchSize int, logger *slog.Logger) *Backfill {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Backfill{store: store, batchSize: batchSize, logger: logger}
}

// Run scans articles missing keywords and stages batched updates. Articles
// with neither title nor description are counted as skipped, not updated.
// Iteration errors abort the run; committed batches stay applied.
func (b *Backfill) Run(ctx context.Context) (updated, skipped int, err error) {
	staged := make(map[string][]string, b.batchSize)

	flush := func() error {
		if len(staged) == 0 {
			return nil
		}
		if err := b.store.UpdateKeywordsBatch(ctx, staged); err != nil {
			return err
		}
		updated += len(staged)
		staged = make(map[string][]string, b.batchSize)
		return nil
	}

	err = b.store.MissingKeywords(ctx, func(article domain.Article) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if article.Title == "" && article.Description == "" {
			skipped++
			return nil
		}

		staged[article.ID] = keywords.Extract(article.Title, article.Description)
		if len(staged) >= b.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return updated, skipped, fmt.Errorf("backfill scan: %w", err)
	}

	if err := flush(); err != nil {
		return updated, skipped, fmt.Errorf("commit final batch: %w", err)
	}

	b.logger.Info("keyword backfill complete", "updated", updated, "skipped", skipped)
	return updated, skipped, nil
}
