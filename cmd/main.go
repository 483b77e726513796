package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/geonorm/internal/config"
	"github.com/UnknownOlympus/geonorm/internal/geocoding"
	"github.com/UnknownOlympus/geonorm/internal/metrics"
	"github.com/UnknownOlympus/geonorm/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// exampleAddress is resolved once per run.
const exampleAddress = "ROYAL BANK PLAZA, 200 BAY STREET, TORONTO, A6, M5J2J5"

// main is the entry point of the application.
func main() {
	// Ctrl+C aborts the in-flight request.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	providerConfig := geocoding.ProviderConfig{
		Type:    geocoding.ProviderType(cfg.ProviderType),
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	}

	geoProvider, err := geocoding.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	logger.DebugContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	resolver := service.NewAddressResolver(logger, geoProvider, cfg.ProviderType, appMetrics)

	result := resolver.Resolve(ctx, exampleAddress)

	if snapshot, err := metrics.Snapshot(reg); err != nil {
		logger.WarnContext(ctx, "Failed to gather metrics", "error", err)
	} else {
		logger.DebugContext(ctx, "Run metrics", "metrics", snapshot)
	}

	out, err := json.Marshal(result)
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}

	fmt.Println(string(out))
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
