package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/hazard-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hazard-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/hazard-risk-service/internal/adapter/mapbox"
	"github.com/couchcryptid/hazard-risk-service/internal/config"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
	"github.com/couchcryptid/hazard-risk-service/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	model, err := config.LoadModel(cfg.RiskModelFile)
	if err != nil {
		logger.Error("failed to load risk model", "error", err)
		os.Exit(1)
	}
	engine, err := domain.NewEngine(model, clockwork.NewRealClock())
	if err != nil {
		logger.Error("failed to build risk engine", "error", err)
		os.Exit(1)
	}
	logger.Info("risk engine ready", "model_version", model.Version, "model_file", cfg.RiskModelFile)

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(engine, geocoder, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	limiter := rate.NewLimiter(rate.Limit(cfg.PredictRateLimit), cfg.PredictRateBurst)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, transformer, limiter, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return p.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
	}

	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
