package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"newsingest/internal/clean"
	"newsingest/internal/domain"
	"newsingest/internal/keywords"
	"newsingest/internal/pacing"
	"newsingest/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source         ports.HeadlineSource
	Scraper        ports.PageScraper
	Summarizer     ports.Summarizer
	Store          ports.ArticleStore
	Cleaner        *clean.Cleaner
	RunPacer       pacing.Pacer
	FetchPacer     pacing.Pacer
	SummarizePacer pacing.Pacer
	Logger         *slog.Logger
}

// Settings carries the orchestration tunables.
type Settings struct {
	Categories       []string
	Country          string
	MinContentLength int
	SummarizeBatch   int
}

// RunStats summarizes one orchestrator pass for the operator.
type RunStats struct {
	Processed  int
	Summarized int
	Skipped    int
	Failed     int
}

// Pipeline drives one full pass over configured categories:
// fetch -> dedupe-by-identity -> scrape -> clean -> extract keywords ->
// summarize -> persist. Failures are contained at per-category or
// per-article granularity; nothing here aborts a run.
type Pipeline struct {
	source         ports.HeadlineSource
	scraper        ports.PageScraper
	summarizer     ports.Summarizer
	store          ports.ArticleStore
	cleaner        *clean.Cleaner
	runPacer       pacing.Pacer
	fetchPacer     pacing.Pacer
	summarizePacer pacing.Pacer
	logger         *slog.Logger
	settings       Settings
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps, settings Settings) *Pipeline {
	return &Pipeline{
		source:         deps.Source,
		scraper:        deps.Scraper,
		summarizer:     deps.Summarizer,
		store:          deps.Store,
		cleaner:        deps.Cleaner,
		runPacer:       deps.RunPacer,
		fetchPacer:     deps.FetchPacer,
		summarizePacer: deps.SummarizePacer,
		logger:         deps.Logger,
		settings:       settings,
	}
}

// Run executes the combined path: each new article is scraped, cleaned,
// summarized, and persisted as completed in a single traversal. Articles
// whose cleaned content misses the viability threshold are skipped without a
// write; a failed summarization stores an empty summary.
func (p *Pipeline) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats

	for _, category := range p.settings.Categories {
		headlines, err := p.source.ListLatest(ctx, category, p.settings.Country)
		if err != nil {
			p.logger.Error("fetch category failed", "category", category, "error", err)
			continue
		}
		if len(headlines) == 0 {
			p.logger.Info("no articles for category", "category", category)
			continue
		}

		for _, headline := range headlines {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if headline.URL == "" {
				stats.Skipped++
				continue
			}

			id := domain.Identity(headline.URL)
			exists, err := p.store.Exists(ctx, id)
			if err != nil {
				p.logger.Error("existence check failed", "url", headline.URL, "error", err)
				stats.Failed++
				continue
			}
			if exists {
				stats.Skipped++
				continue
			}

			raw := p.scrape(ctx, headline.URL)
			cleaned := p.cleaner.Clean(raw)
			if len(cleaned) < p.settings.MinContentLength {
				p.logger.Info("cleaned content below threshold", "url", headline.URL, "length", len(cleaned))
				stats.Skipped++
				continue
			}

			summary := p.summarize(ctx, cleaned, &stats)

			status := domain.StatusCompleted
			patch := domain.ArticlePatch{
				URL:         &headline.URL,
				Title:       &headline.Title,
				Description: &headline.Description,
				Category:    &category,
				PublishedAt: &headline.PublishedAt,
				Content:     &cleaned,
				Keywords:    keywords.Extract(headline.Title, headline.Description),
				Summary:     &summary,
				Status:      &status,
			}
			if err := p.store.Upsert(ctx, id, patch); err != nil {
				p.logger.Error("persist failed", "url", headline.URL, "error", err)
				stats.Failed++
				continue
			}

			stats.Processed++
			p.logger.Info("article processed", "category", category, "title", truncate(headline.Title, 80))

			if err := p.runPacer.Wait(ctx); err != nil {
				return stats, err
			}
		}
	}

	p.logger.Info("pipeline run complete",
		"processed", stats.Processed,
		"summarized", stats.Summarized,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
	return stats, nil
}

// FetchAndStore executes phase one of the two-phase path: new articles are
// scraped and persisted as pending with raw content and keywords, deferring
// summarization to a later SummarizePending pass.
func (p *Pipeline) FetchAndStore(ctx context.Context) (RunStats, error) {
	var stats RunStats

	for _, category := range p.settings.Categories {
		headlines, err := p.source.ListLatest(ctx, category, p.settings.Country)
		if err != nil {
			p.logger.Error("fetch category failed", "category", category, "error", err)
			continue
		}

		for _, headline := range headlines {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if headline.URL == "" {
				stats.Skipped++
				continue
			}

			id := domain.Identity(headline.URL)
			exists, err := p.store.Exists(ctx, id)
			if err != nil {
				p.logger.Error("existence check failed", "url", headline.URL, "error", err)
				stats.Failed++
				continue
			}
			if exists {
				stats.Skipped++
				continue
			}

			raw := p.scrape(ctx, headline.URL)

			description := headline.Description
			if description == "" {
				description = headline.Content
			}

			status := domain.StatusPending
			patch := domain.ArticlePatch{
				URL:         &headline.URL,
				Title:       &headline.Title,
				Description: &headline.Description,
				Category:    &category,
				PublishedAt: &headline.PublishedAt,
				RawContent:  &raw,
				Keywords:    keywords.Extract(headline.Title, description),
				Status:      &status,
			}
			if err := p.store.Upsert(ctx, id, patch); err != nil {
				p.logger.Error("persist failed", "url", headline.URL, "error", err)
				stats.Failed++
				continue
			}

			stats.Processed++

			if err := p.fetchPacer.Wait(ctx); err != nil {
				return stats, err
			}
		}
	}

	p.logger.Info("fetch phase complete",
		"stored", stats.Processed,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
	return stats, nil
}

// SummarizePending executes phase two of the two-phase path: it drains up to
// one batch of pending articles, cleaning their stored raw content and
// summarizing the viable ones. Articles without usable content are marked
// failed_no_content and not touched again.
func (p *Pipeline) SummarizePending(ctx context.Context) (RunStats, error) {
	var stats RunStats

	articles, err := p.store.ListByStatus(ctx, domain.StatusPending, p.settings.SummarizeBatch)
	if err != nil {
		return stats, fmt.Errorf("list pending: %w", err)
	}
	if len(articles) == 0 {
		p.logger.Info("no pending articles to summarize")
		return stats, nil
	}

	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if article.RawContent == "" {
			p.markFailedNoContent(ctx, article.ID, &stats)
			continue
		}

		cleaned := p.cleaner.Clean(article.RawContent)
		if len(cleaned) < p.settings.MinContentLength {
			p.markFailedNoContent(ctx, article.ID, &stats)
			continue
		}

		summary := p.summarize(ctx, cleaned, &stats)

		status := domain.StatusCompleted
		patch := domain.ArticlePatch{
			Content: &cleaned,
			Summary: &summary,
			Status:  &status,
		}
		if err := p.store.Upsert(ctx, article.ID, patch); err != nil {
			p.logger.Error("persist failed", "id", article.ID, "error", err)
			stats.Failed++
			continue
		}

		stats.Processed++

		if err := p.summarizePacer.Wait(ctx); err != nil {
			return stats, err
		}
	}

	p.logger.Info("summarize phase complete",
		"completed", stats.Processed,
		"summarized", stats.Summarized,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
	return stats, nil
}

func (p *Pipeline) scrape(ctx context.Context, url string) string {
	if p.scraper == nil {
		return ""
	}
	raw, err := p.scraper.FetchBody(ctx, url)
	if err != nil {
		p.logger.Warn("scrape failed", "url", url, "error", err)
		return ""
	}
	return raw
}

func (p *Pipeline) summarize(ctx context.Context, cleaned string, stats *RunStats) string {
	if p.summarizer == nil {
		return ""
	}
	summary, err := p.summarizer.Summarize(ctx, cleaned)
	if err != nil {
		p.logger.Warn("summarize failed", "error", err)
		return ""
	}
	stats.Summarized++
	return summary
}

func (p *Pipeline) markFailedNoContent(ctx context.Context, id string, stats *RunStats) {
	status := domain.StatusFailedNoContent
	if err := p.store.Upsert(ctx, id, domain.ArticlePatch{Status: &status}); err != nil {
		p.logger.Error("status update failed", "id", id, "error", err)
		stats.Failed++
		return
	}
	stats.Skipped++
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
