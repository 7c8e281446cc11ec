// Package cli provides common CLI initialization utilities.
// This package consolidates the startup steps shared by cmd/orbital,
// cmd/orbital-worker and cmd/orbital-cli.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"orbital/internal/backend"
	"orbital/internal/config"
	"orbital/internal/log"
	"orbital/internal/mockdata"
	"orbital/internal/services"
)

// ShutdownTimeout bounds graceful shutdown of servers and consumers.
const ShutdownTimeout = 30 * time.Second

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	logger := log.New(log.ConfigFromSettings(cfg.LogLevel, cfg.LogFormat, component))
	log.SetDefault(logger)
	return logger
}

// Bootstrap runs the common startup sequence: .env, config, logger. A
// configuration error is printed to stderr before returning.
func Bootstrap(component string) (*config.Config, *log.Logger, error) {
	LoadEnvFile()
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}
	return cfg, SetupLogger(cfg, component), nil
}

// InitBackend opens the preference store selected by DATA_BACKEND.
func InitBackend(ctx context.Context, cfg *config.Config, logger *log.Logger) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := bcfg.Validate(); err != nil {
		return nil, err
	}
	return backend.NewFactory(logger).CreateBackend(ctx, bcfg)
}

// NewDashboard generates the dataset described by cfg.
func NewDashboard(cfg *config.Config, now func() time.Time, logger *log.Logger) *services.DashboardService {
	gen := mockdata.NewGenerator(cfg.RandomSeed, now)
	return services.NewDashboardService(gen, services.DashboardConfig{
		TransactionCount: cfg.TransactionCount,
		BalanceMonths:    cfg.BalanceMonths,
		LoadingDelay:     cfg.LoadingDelay,
		CacheSize:        cfg.CacheSize,
		CacheTTL:         cfg.CacheTTL,
	}, now, logger)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
