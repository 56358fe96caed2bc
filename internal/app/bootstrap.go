package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/snaptools/internal/config"
	"github.com/ferdiebergado/snaptools/internal/middleware"
	envx "github.com/ferdiebergado/snaptools/internal/pkg/env"
	"github.com/ferdiebergado/snaptools/internal/pkg/logging"
	"github.com/ferdiebergado/snaptools/internal/pkg/security"
)

const envFile = ".env"

// LoadConfig loads .env outside production, then the config file named by
// SNAPTOOLS_CONFIG. A missing config file falls back to the defaults with env
// overrides applied.
func LoadConfig() (*config.Config, error) {
	if envx.Env("APP_ENV", "development") != "production" {
		if _, err := os.Stat(envFile); err == nil {
			if err := env.Load(envFile); err != nil {
				return nil, fmt.Errorf("load env: %w", err)
			}
		}
	}

	cfgFile := envx.Env("SNAPTOOLS_CONFIG", "config.json")
	cfg, err := config.Load(cfgFile)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Config file not found, using defaults.", "config_file", cfgFile)
		cfg = config.Default()
		if err := envx.OverrideStruct(cfg); err != nil {
			return nil, fmt.Errorf("override config with env: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func Run(baseCtx context.Context) error {
	slog.Info("Initializing...")

	signalCtx, stop := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stderr)

	provider, err := NewProvider(cfg, security.StdlibRandomizer)
	if err != nil {
		return err
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.CORS(cfg.CORS.AllowedOrigin),
		middleware.ContextGuard,
		middleware.CheckContentType,
	}
	api := New(cfg, provider, middlewares)

	if err := api.Start(signalCtx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	return api.Shutdown()
}
