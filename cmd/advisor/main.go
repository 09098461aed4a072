package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-advisor-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/weather-advisor-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-advisor-service/internal/adapter/openweather"
	"github.com/couchcryptid/weather-advisor-service/internal/advisor"
	"github.com/couchcryptid/weather-advisor-service/internal/config"
	"github.com/couchcryptid/weather-advisor-service/internal/domain"
	"github.com/couchcryptid/weather-advisor-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	profiles, err := domain.LoadProfiles(cfg.ProfilePath)
	if err != nil {
		logger.Error("failed to load activity profiles", "path", cfg.ProfilePath, "error", err)
		os.Exit(1)
	}
	logger.Info("activity profiles loaded", "count", profiles.Len())

	provider := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherTimeout, logger, metrics)

	// Advice event publishing is feature-flagged via ADVICE_EVENTS_ENABLED.
	var publisher advisor.AdvicePublisher
	var writer *kafkaadapter.Writer
	if cfg.AdviceEventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublisherEnabled.Set(1)
		logger.Info("advice event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAdviceTopic)
	} else {
		metrics.PublisherEnabled.Set(0)
		logger.Info("advice event publishing disabled")
	}

	adv := advisor.New(profiles, provider, publisher, cfg.DefaultLanguage, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, adv, adv, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
