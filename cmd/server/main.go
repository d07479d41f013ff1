package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/finsight/internal/config"
	"github.com/aristath/finsight/internal/database"
	"github.com/aristath/finsight/internal/modules/breakeven"
	"github.com/aristath/finsight/internal/modules/capital"
	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/dcf"
	"github.com/aristath/finsight/internal/modules/montecarlo"
	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/ratios"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/internal/modules/workingcapital"
	"github.com/aristath/finsight/internal/server"
	"github.com/aristath/finsight/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting FinSight")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Load embedded industry benchmark tables
	ratioBenchmarks, err := ratios.LoadBenchmarks()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load ratio benchmarks")
	}
	wcNorms, err := workingcapital.LoadNorms()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load working-capital norms")
	}

	// Repositories
	companiesRepo := companies.NewRepository(db.Conn(), log)
	runsRepo := runs.NewRepository(db.Conn(), log)

	// Narrative analysis is best-effort and disabled without an API key
	var provider narrative.Provider = &narrative.DisabledProvider{}
	if cfg.GeminiAPIKey != "" {
		provider = &narrative.GeminiProvider{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.NarrativeModel,
		}
	}
	narrativeSvc := narrative.NewService(provider, time.Duration(cfg.NarrativeTimeout)*time.Second, log)
	if !narrativeSvc.Available() {
		log.Info().Msg("Narrative analysis disabled (no GEMINI_API_KEY)")
	}

	// Module handlers
	handlers := server.Handlers{
		Ratios:         ratios.NewHandler(companiesRepo, ratioBenchmarks, runsRepo, narrativeSvc, log),
		BreakEven:      breakeven.NewHandler(runsRepo, narrativeSvc, log),
		Capital:        capital.NewHandler(runsRepo, narrativeSvc, log),
		DCF:            dcf.NewHandler(companiesRepo, runsRepo, narrativeSvc, log),
		MonteCarlo:     montecarlo.NewHandler(runsRepo, narrativeSvc, cfg.MaxSimulations, log),
		WorkingCapital: workingcapital.NewHandler(wcNorms, runsRepo, narrativeSvc, log),
		Companies:      companies.NewHandler(companiesRepo, log),
		Runs:           runs.NewHandler(runsRepo, log),
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		DB:        db,
		Config:    cfg,
		Narrative: narrativeSvc,
		Handlers:  handlers,
		DevMode:   cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
