package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/bcg-survey-pipeline/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/bcg-survey-pipeline/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/bcg-survey-pipeline/internal/adapter/kafka"
	"github.com/couchcryptid/bcg-survey-pipeline/internal/config"
	"github.com/couchcryptid/bcg-survey-pipeline/internal/observability"
	"github.com/couchcryptid/bcg-survey-pipeline/internal/pipeline"
)

func main() {
	// .env is a local-dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var hucNames map[string]string
	if cfg.HUCNamesPath != "" {
		hucNames, err = csvfile.LoadHUCNames(cfg.HUCNamesPath)
		if err != nil {
			logger.Error("failed to load huc names", "error", err)
			os.Exit(1)
		}
		logger.Info("huc name reference loaded", "entries", len(hucNames))
	}

	extractor := csvfile.NewExtractor(cfg.InputPath, logger)
	loader := csvfile.NewLoader(cfg.CleanedOutPath, cfg.YearlyOutPath, cfg.WatershedOutPath, logger)

	// Streaming export is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher pipeline.Publisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = kafkaWriter
		logger.Info("kafka export enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka export disabled")
	}

	p := pipeline.New(extractor, loader, publisher, hucNames, cfg.CutoffYear, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Serve health/readiness/metrics for the duration of the run.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	exitCode := 0
	if _, err := p.Run(ctx); err != nil {
		logger.Error("pipeline run failed", "error", err)
		exitCode = 1
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	os.Exit(exitCode)
}
