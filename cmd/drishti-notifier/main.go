package main

import (
	"log"
	"os"

	"drishti-notifier/internal/app"
	"drishti-notifier/internal/config"
	"drishti-notifier/internal/fetcher"
	"drishti-notifier/internal/notifier"
	"drishti-notifier/internal/observability"
	"drishti-notifier/internal/scraper"
	"drishti-notifier/internal/storage/jsonfile"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadEnvFiles(); err != nil {
		log.Printf("Warning: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger := observability.NewLogger(observability.Options{
		LogPath:    cfg.Observability.LogPath,
		LogLevel:   cfg.Observability.LogLevel,
		LogFormat:  cfg.Observability.LogFormat,
		MaxSizeMB:  cfg.Observability.MaxSizeMB,
		MaxBackups: cfg.Observability.MaxBackups,
		MaxAgeDays: cfg.Observability.MaxAgeDays,
	})
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	ctx, cancel := app.GracefulShutdown(logger, cfg.GetRunTimeout())
	defer cancel()

	orchestrator := app.NewOrchestrator(
		cfg,
		logger,
		fetcher.NewPageFetcher(cfg, logger),
		scraper.NewScraper(&cfg.Selectors, logger),
		jsonfile.NewRepository(cfg.HistoryFile, cfg.MaxHistorySize, logger),
		notifier.NewDiscord(cfg, logger),
	)

	// ConfigError и FetchError - единственные фатальные ошибки
	if _, err := orchestrator.Run(ctx); err != nil {
		logger.Error("Run aborted", "error", err.Error())
		return 1
	}

	return 0
}
