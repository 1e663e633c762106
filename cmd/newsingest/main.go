package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"newsingest/internal/app"
	"newsingest/internal/config"
	"newsingest/internal/logging"
)

// Modes: run (combined pass), fetch (store pending with raw content),
// summarize (drain one pending batch), backfill (recompute keywords).
func main() {
	_ = godotenv.Load()

	mode := "run"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := cfg.Validate(mode); err != nil {
		logger.Error("invalid configuration", "mode", mode, "error", err)
		os.Exit(1)
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(ctx, mode); err != nil {
		logger.Error("run failed", "mode", mode, "error", err)
		os.Exit(1)
	}
}
