package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ferdiebergado/snaptools/internal/config"
	"github.com/ferdiebergado/snaptools/internal/platform/router"
	"github.com/ferdiebergado/snaptools/internal/platform/validation"
	"github.com/ferdiebergado/snaptools/internal/tool"
)

type App struct {
	server          *http.Server
	config          *config.Config
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
	validator       validation.Validator
	router          router.Router
	service         tool.Service
	mountOnce       sync.Once
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	handler := tool.NewHandler(a.service)
	mountToolRoutes(a.router, handler, a.validator, a.config.Server.MaxBodyBytes)
}

// Handler mounts the middlewares and routes on first use and returns the
// router.
func (a *App) Handler() http.Handler {
	a.mountOnce.Do(func() {
		a.registerMiddlewares()
		a.setupRoutes()
		slog.Debug("Routes mounted.", "count", len(a.router.Routes()))
	})
	return a.router
}

// Routes mounts the API if needed and lists its routes.
func (a *App) Routes() []router.Route {
	a.Handler()
	return a.router.Routes()
}

func (a *App) Start(ctx context.Context) error {
	a.server.Handler = a.Handler()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", serverCfg.Port),
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	transformCfg := cfg.Transform
	svc := tool.NewService(provider.Catalog, provider.Invoker, transformCfg.Timeout.Duration, transformCfg.KeygenTimeout.Duration)

	return &App{
		config:          cfg,
		validator:       provider.Validator,
		router:          provider.Router,
		service:         svc,
		server:          server,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}
}
