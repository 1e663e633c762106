package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"newsingest/internal/clean"
	"newsingest/internal/config"
	"newsingest/internal/infrastructure/gemini"
	"newsingest/internal/infrastructure/jina"
	"newsingest/internal/infrastructure/newsapi"
	"newsingest/internal/infrastructure/storage"
	"newsingest/internal/logging"
	"newsingest/internal/pacing"
	"newsingest/internal/ports"
	"newsingest/internal/usecase"
)

// Application wires configuration into adapters and orchestrators. Construct
// once at process start, Close at process end; no module-level client state.
type Application struct {
	cfg      config.Config
	db       *sql.DB
	pipeline *usecase.Pipeline
	backfill *usecase.Backfill
	logger   *slog.Logger
}

// New builds the application: database connection, store schema, adapters,
// and orchestrators. Any failure here is fatal by design; nothing has
// touched an article yet.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := storage.NewPostgresStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	var summarizer ports.Summarizer
	if cfg.Gemini.APIKey != "" {
		summarizer, err = gemini.NewSummarizer(ctx, cfg.Gemini)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("build summarizer: %w", err)
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:         newsapi.NewClient(cfg.NewsAPI),
		Scraper:        jina.NewClient(cfg.Jina, baseLogger.With("component", "scraper")),
		Summarizer:     summarizer,
		Store:          store,
		Cleaner:        clean.New(cfg.Cleaner.BoilerplatePhrases),
		RunPacer:       pacing.NewFixed(cfg.Pipeline.RunDelay.Std()),
		FetchPacer:     pacing.NewFixed(cfg.Pipeline.FetchDelay.Std()),
		SummarizePacer: pacing.NewFixed(cfg.Pipeline.SummarizeDelay.Std()),
		Logger:         baseLogger.With("component", "pipeline"),
	}, usecase.Settings{
		Categories:       cfg.Pipeline.Categories,
		Country:          cfg.Pipeline.Country,
		MinContentLength: cfg.Pipeline.MinContentLength,
		SummarizeBatch:   cfg.Pipeline.SummarizeBatchSize,
	})

	backfill := usecase.NewBackfill(store, cfg.Pipeline.BackfillBatchSize,
		baseLogger.With("component", "backfill"))

	return &Application{
		cfg:      cfg,
		db:       db,
		pipeline: pipeline,
		backfill: backfill,
		logger:   baseLogger,
	}, nil
}

// Run dispatches one pass of the requested mode.
func (a *Application) Run(ctx context.Context, mode string) error {
	switch mode {
	case "run":
		_, err := a.pipeline.Run(ctx)
		return err
	case "fetch":
		_, err := a.pipeline.FetchAndStore(ctx)
		return err
	case "summarize":
		_, err := a.pipeline.SummarizePending(ctx)
		return err
	case "backfill":
		_, _, err := a.backfill.Run(ctx)
		return err
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// Close releases the database connection.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
