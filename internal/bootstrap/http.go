package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/revobooking/revo-ui/config"
	httpx "github.com/revobooking/revo-ui/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer builds the server around the browser router. The caller
// starts it with serveHTTP and stops it with ShutdownHTTPServer.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler, err := httpx.NewRouter(routerServices(appCfg, cfg.Services, logger))
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
	}

	// Guard against empty addr to avoid listening on Go default
	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}

func routerServices(cfg *config.AppConfig, svc ServiceContainer, logger *slog.Logger) httpx.RouterServices {
	rs := httpx.RouterServices{
		Cookies: httpx.CookieSettings{
			Name:   cfg.Session.CookieName,
			Domain: cfg.HTTP.CookieDomain,
		},
		Formatter:          svc.Formatter,
		Metrics:            svc.Metrics,
		CompressionEnabled: cfg.HTTP.CompressionEnabled,
		CompressionLevel:   cfg.HTTP.CompressionLevel,
		LoginRatePerMinute: cfg.Session.LoginRatePerMinute,
		IsDev:              cfg.IsDev,
		Logger:             logger,
	}
	if svc.Metrics != nil {
		rs.MetricsPath = cfg.Observability.Metrics.Path
	}

	// Typed nil pointers must not reach the router's interface fields.
	if svc.Sessions != nil {
		rs.Sessions = svc.Sessions
	}
	if svc.Catalog != nil {
		rs.Catalog = svc.Catalog
	}
	if svc.Checkout != nil {
		rs.Checkout = svc.Checkout
	}
	if svc.Dashboard != nil {
		rs.Dashboard = svc.Dashboard
	}
	if svc.Overview != nil {
		rs.Overview = svc.Overview
	}
	if svc.Services != nil {
		rs.Services = svc.Services
	}
	if svc.Destinations != nil {
		rs.Destinations = svc.Destinations
	}
	if svc.Aircraft != nil {
		rs.Aircraft = svc.Aircraft
	}
	if svc.Bookings != nil {
		rs.Bookings = svc.Bookings
	}
	if svc.Users != nil {
		rs.Users = svc.Users
	}
	return rs
}

// serveHTTP runs the server until it is shut down and reports any other failure on errCh.
func serveHTTP(server *http.Server, logger *slog.Logger, errCh chan<- error) {
	logger.Info("starting HTTP server", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errCh <- fmt.Errorf("http server: %w", err)
	}
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
