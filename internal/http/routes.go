package httpx

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	revoui "github.com/revobooking/revo-ui"
	"github.com/revobooking/revo-ui/internal/http/uiutil"
	"github.com/revobooking/revo-ui/internal/observability/metrics"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions     SessionManager
	Catalog      CatalogBrowser
	Checkout     CheckoutFlow
	Dashboard    DashboardLoader
	Overview     OverviewLoader
	Services     serviceCollection
	Bookings     BookingAdmin
	Users        UserAdmin
	Destinations destinationCollection
	Aircraft     aircraftCollection

	Cookies   CookieSettings
	Formatter *uiutil.Formatter
	Metrics   *metrics.Registry
	// MetricsPath mounts the Prometheus handler when non-empty.
	MetricsPath string

	// CompressionLevel enables gzip at the given level when CompressionEnabled is set.
	CompressionEnabled bool
	CompressionLevel   int
	// LoginRatePerMinute caps POST /login per client address; zero disables it.
	LoginRatePerMinute int

	// TemplateFS overrides the template source (tests). When nil, templates come
	// from disk in dev mode and from the embedded FS otherwise.
	TemplateFS fs.FS

	IsDev  bool         // Development mode flag for template reloading from disk
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates the browser-facing handler: routes, guards, session
// resolution, CSRF protection and the ops endpoints.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Sessions == nil {
		return nil, errors.New("router requires a session manager")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ui, err := setupUIHandlers(services, logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if services.MetricsPath != "" && services.Metrics != nil {
		mux.Handle("GET "+services.MetricsPath, services.Metrics.Handler())
	}
	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticHandler(services.IsDev, logger))

	registerUIRoutes(mux, ui, uiRouteConfig{
		loginRatePerMinute: services.LoginRatePerMinute,
		logger:             logger,
	})

	var handler http.Handler = &notFoundHandler{mux: mux, uiHandlers: ui}
	handler = CSRFProtection(CSRFConfig{CookieDomain: services.Cookies.Domain, Logger: logger})(handler)
	handler = SessionMiddleware(SessionMiddlewareConfig{
		Sessions: services.Sessions,
		Cookies:  services.Cookies,
		Metrics:  services.Metrics,
	})(handler)
	if services.CompressionEnabled {
		handler = Compression(CompressionConfig{Level: services.CompressionLevel, Logger: logger})(handler)
	}
	handler = Logging(logger, services.Metrics)(handler)
	handler = Recover(logger)(handler)

	return otelhttp.NewHandler(handler, "revo-ui",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/static/") && r.URL.Path != "/healthz"
		}),
	), nil
}

// setupUIHandlers creates UI handlers with the template renderer.
// In dev mode templates are loaded from disk; otherwise from the embedded FS.
func setupUIHandlers(services RouterServices, logger *slog.Logger) (*UIHandlers, error) {
	templateFS := services.TemplateFS
	if templateFS == nil {
		if services.IsDev {
			templateFS = os.DirFS(TemplatePathFromRoot)
		} else {
			sub, err := fs.Sub(revoui.TemplateFS, TemplatePathFromRoot)
			if err != nil {
				return nil, err
			}
			templateFS = sub
		}
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Formatter:  services.Formatter,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return &UIHandlers{
		T:            tr,
		Sessions:     services.Sessions,
		Catalog:      services.Catalog,
		Checkout:     services.Checkout,
		Dashboard:    services.Dashboard,
		Overview:     services.Overview,
		Services:     services.Services,
		Bookings:     services.Bookings,
		Users:        services.Users,
		Destinations: services.Destinations,
		Aircraft:     services.Aircraft,
		Cookies:      services.Cookies,
		Formatter:    services.Formatter,
		Metrics:      services.Metrics,
		IsDev:        services.IsDev,
		Logger:       logger,
	}, nil
}

// staticHandler serves /static/* assets from disk in dev mode and from the embedded FS otherwise.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}

	staticSub, err := fs.Sub(revoui.StaticFS, "frontend/static")
	if err != nil {
		logger.Error("failed to create sub-filesystem for static assets", slog.Any("error", err))
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

//nolint:gochecknoglobals // compiled once
var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			// Hashed assets can be cached for a long time (1 year)
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and renders the not-found page for unmatched routes.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" || strings.HasPrefix(r.URL.Path, "/static/") {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status != http.StatusNotFound {
		// 405 and redirects from the mux keep their original response.
		cw.flushTo(w, h.uiHandlers.logger())
		return
	}
	h.uiHandlers.NotFound(w, r)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter, logger *slog.Logger) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		logger.Error("failed to write captured response", slog.Any("error", err))
	}
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	loginRatePerMinute int
	logger             *slog.Logger
}

// route wraps h with the route recorder used for metrics labels.
func route(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recordRoute(r)
		h(w, r)
	})
}

// registerUIRoutes delegates to per-area UI route registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerPublicRoutes(mux, h, cfg)
	registerCustomerRoutes(mux, h)
	registerAdminRoutes(mux, h)
}

// registerPublicRoutes wires pages any visitor may open.
func registerPublicRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	limit := LoginRateLimit(LoginRateLimitConfig{PerMinute: cfg.loginRatePerMinute, Logger: cfg.logger})

	mux.Handle("GET /{$}", route(h.HomePage))
	mux.Handle("GET /login", route(h.LoginPage))
	mux.Handle("POST /login", limit(route(h.Login)))
	mux.Handle("GET /register", route(h.RegisterPage))
	mux.Handle("POST /register", route(h.Register))
	mux.Handle("POST /logout", route(h.Logout))
	mux.Handle("GET /booking", route(h.BookingPage))
	// Checkout answers guests with a login prompt rather than a redirect.
	mux.Handle("GET /booking/{id}/checkout", route(h.CheckoutPage))
	mux.Handle("POST /booking/{id}/checkout", route(h.SubmitCheckout))
}

// registerCustomerRoutes wires pages that require a signed-in user.
func registerCustomerRoutes(mux *http.ServeMux, h *UIHandlers) {
	wrap := RequireAuthBrowser()
	mux.Handle("GET /dashboard", wrap(route(h.DashboardPage)))
}

// registerAdminRoutes wires the admin console.
func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers) {
	wrap := RequireAdminBrowser()
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, wrap(route(fn)))
	}

	handle("GET /admin", h.AdminOverviewPage)

	handle("GET /admin/services", h.AdminServicesPage)
	handle("POST /admin/services", h.CreateService)
	handle("POST /admin/services/{id}", h.UpdateService)
	handle("POST /admin/services/{id}/delete", h.DeleteService)

	handle("GET /admin/bookings", h.AdminBookingsPage)
	handle("POST /admin/bookings/{id}/status", h.UpdateBookingStatus)
	handle("POST /admin/bookings/{id}/delete", h.DeleteBooking)

	handle("GET /admin/users", h.AdminUsersPage)
	handle("POST /admin/users", h.CreateUser)
	handle("POST /admin/users/{id}", h.UpdateUser)
	handle("POST /admin/users/{id}/role", h.ChangeUserRole)
	handle("POST /admin/users/{id}/delete", h.DeleteUser)

	handle("GET /admin/destinations", h.AdminDestinationsPage)
	handle("POST /admin/destinations", h.CreateDestination)
	handle("POST /admin/destinations/{id}", h.UpdateDestination)
	handle("POST /admin/destinations/{id}/delete", h.DeleteDestination)

	handle("GET /admin/aircrafts", h.AdminAircraftPage)
	handle("POST /admin/aircrafts", h.CreateAircraft)
	handle("POST /admin/aircrafts/{id}", h.UpdateAircraft)
	handle("POST /admin/aircrafts/{id}/delete", h.DeleteAircraft)
}
