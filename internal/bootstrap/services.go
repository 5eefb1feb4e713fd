package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revobooking/revo-ui/config"
	"github.com/revobooking/revo-ui/internal/adapters/memory"
	redisstore "github.com/revobooking/revo-ui/internal/adapters/redis"
	"github.com/revobooking/revo-ui/internal/apiclient"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/http/uiutil"
	"github.com/revobooking/revo-ui/internal/observability/metrics"
	"github.com/revobooking/revo-ui/internal/ports"
	"github.com/revobooking/revo-ui/internal/service"
)

const (
	shutdownWaitTimeout  = 10 * time.Second
	sessionSweepInterval = 5 * time.Minute
)

// ServiceDeps contains the infrastructure services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds every constructed service.
type ServiceContainer struct {
	Sessions     *service.SessionService
	Catalog      *service.CatalogService
	Checkout     *service.CheckoutService
	Dashboard    *service.DashboardService
	Overview     *service.OverviewService
	Services     *service.ResourceService[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest]
	Destinations *service.ResourceService[model.Destination, model.DestinationRequest, model.DestinationRequest]
	Aircraft     *service.ResourceService[model.Aircraft, model.AircraftRequest, model.AircraftRequest]
	Bookings     *service.BookingAdminService
	Users        *service.UserAdminService

	Formatter *uiutil.Formatter
	Metrics   *metrics.Registry

	// memoryStore is set when sessions live in process memory and need sweeping.
	memoryStore *memory.SessionStore
}

// NewServices wires the API client, the session store and the page services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require a config")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var registry *metrics.Registry
	if cfg.Observability.Metrics.IsEnabled() {
		registry = metrics.New()
	}

	client, err := apiclient.New(apiclient.Options{
		BaseURL:          cfg.API.BaseURL,
		Timeout:          cfg.API.Timeout,
		ErrorMessagePath: cfg.API.ErrorMessagePath,
		Logger:           logger,
		Observer:         observerFor(registry),
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build api client: %w", err)
	}

	store, mem, err := newSessionStore(cfg, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	apis := service.AdminAPIs{
		Services:     client.Services(),
		Bookings:     client.Bookings(),
		Users:        client.Users(),
		Destinations: client.Destinations(),
		Aircraft:     client.Aircraft(),
	}

	return ServiceContainer{
		Sessions: service.NewSessionService(service.SessionServiceOptions{
			Store:  store,
			API:    client,
			Config: service.SessionServiceConfig{TTL: cfg.Session.TTL, Logger: logger},
		}),
		Catalog: service.NewCatalogService(service.CatalogServiceOptions{
			Services: apis.Services,
			Locale:   cfg.Display.Tag(),
			Logger:   logger,
		}),
		Checkout: service.NewCheckoutService(service.CheckoutServiceOptions{
			Bookings: apis.Bookings,
			Services: apis.Services,
			Config:   service.CheckoutServiceConfig{Logger: logger},
		}),
		Dashboard:    service.NewDashboardService(service.DashboardServiceOptions{Bookings: apis.Bookings}),
		Overview:     service.NewOverviewService(service.OverviewServiceOptions{APIs: apis, Logger: logger}),
		Services:     service.NewResourceService(apis.Services, "services", logger),
		Destinations: service.NewResourceService(apis.Destinations, "destinations", logger),
		Aircraft:     service.NewResourceService(apis.Aircraft, "aircrafts", logger),
		Bookings:     service.NewBookingAdminService(apis.Bookings, logger),
		Users:        service.NewUserAdminService(apis.Users, logger),
		Formatter:    uiutil.NewFormatter(cfg.Display.Location(), cfg.Display.Tag()),
		Metrics:      registry,
		memoryStore:  mem,
	}, nil
}

// observerFor avoids handing the client a typed nil registry.
//
//nolint:ireturn // the observer is optional.
func observerFor(registry *metrics.Registry) apiclient.RequestObserver {
	if registry == nil {
		return nil
	}
	return registry
}

// newSessionStore selects the configured session store. The memory store is
// returned separately so its sweeper can be started.
//
//nolint:ireturn // the store kind is chosen at runtime.
func newSessionStore(cfg *config.AppConfig, client redis.UniversalClient) (ports.SessionStore, *memory.SessionStore, error) {
	if cfg.UsesRedis() {
		if client == nil {
			return nil, nil, errors.New("redis session store requires a redis client")
		}
		return redisstore.NewSessionStoreWithPrefix(client, cfg.Redis.KeyPrefix), nil, nil
	}
	mem := memory.NewSessionStore()
	return mem, mem, nil
}

// ServiceOrchestrationConfig contains what RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
	// Signals overrides the shutdown signal source (tests).
	Signals <-chan os.Signal
}

// backgroundService describes a startable background component.
type backgroundService struct {
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	name string
	done <-chan struct{}
}

func buildBackgroundServices(services ServiceContainer) []backgroundService {
	var out []backgroundService
	if mem := services.memoryStore; mem != nil {
		out = append(out, backgroundService{
			name: "session sweeper",
			start: func(ctx context.Context) error {
				mem.RunSweeper(ctx, sessionSweepInterval)
				return nil
			},
		})
	}
	return out
}

func launchBackground(ctx context.Context, logger *slog.Logger, errCh chan<- error, svc backgroundService) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := svc.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", svc.name, err)
			select {
			case errCh <- errMsg:
			case <-ctx.Done():
			default:
				logger.WarnContext(ctx, "dropping background service error", "service", svc.name, "error", errMsg)
			}
		}
	}()
	logger.InfoContext(ctx, "background service started", "service", svc.name)
	return done
}

// RunServicesWithShutdown starts the HTTP server and background services and
// blocks until a shutdown signal arrives or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	background := buildBackgroundServices(cfg.Services)
	errCh := make(chan error, len(background)+1)
	handles := make([]backgroundServiceHandle, 0, len(background))
	for _, svc := range background {
		handles = append(handles, backgroundServiceHandle{
			name: svc.name,
			done: launchBackground(serviceCtx, logger, errCh, svc),
		})
	}
	go serveHTTP(server, logger, errCh)

	return waitForShutdown(shutdownConfig{
		signals:     cfg.Signals,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  server,
		logger:      logger,
		backgrounds: handles,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	signals     <-chan os.Signal
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := cfg.signals
	if quit == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(ch)
		quit = ch
	}

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains the HTTP server, then waits for background services.
func gracefulStop(cfg shutdownConfig) error {
	if err := ShutdownHTTPServer(context.Background(), cfg.httpServer, cfg.logger); err != nil {
		return err
	}
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}
	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
