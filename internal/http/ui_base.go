package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/catalog"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/http/ui/viewmodel"
	"github.com/revobooking/revo-ui/internal/http/uiutil"
	"github.com/revobooking/revo-ui/internal/observability/metrics"
	"github.com/revobooking/revo-ui/internal/service"
)

// SessionManager covers the session operations the browser routes need.
type SessionManager interface {
	SessionResolver
	Login(ctx context.Context, req model.LoginRequest, previousSessionID string) (*service.LoginResult, error)
	Register(ctx context.Context, req model.RegisterRequest) error
	Logout(ctx context.Context, sessionID string) error
	SetFlash(ctx context.Context, sessionID string, flash domainauth.Flash) (string, error)
	PopFlash(ctx context.Context, sessionID string) *domainauth.Flash
}

// CatalogBrowser is the read side of the service catalog.
type CatalogBrowser interface {
	Browse(ctx context.Context, q catalog.Query) (catalog.View, error)
	Preview(ctx context.Context, n int) ([]model.Service, error)
	Get(ctx context.Context, id ident.ID) (model.Service, error)
}

// CheckoutFlow opens and submits the passenger form.
type CheckoutFlow interface {
	Open(ctx context.Context, state domainauth.SessionState, serviceID ident.ID) (*service.Checkout, error)
	Submit(ctx context.Context, state domainauth.SessionState, form service.CheckoutForm) error
}

// DashboardLoader loads the customer dashboard.
type DashboardLoader interface {
	Load(ctx context.Context) (*service.Dashboard, error)
}

// OverviewLoader loads the admin overview.
type OverviewLoader interface {
	Load(ctx context.Context) (*service.AdminOverview, error)
}

// AdminCollection is one admin-managed resource kind.
type AdminCollection[T, C, U any] interface {
	Load(ctx context.Context) ([]T, error)
	Create(ctx context.Context, body C) error
	Update(ctx context.Context, id ident.ID, body U) error
	Delete(ctx context.Context, id ident.ID) (string, error)
}

// BookingAdmin manages booking status and removal.
type BookingAdmin interface {
	Load(ctx context.Context) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id ident.ID, status string) error
	InFlight(id ident.ID) bool
	Delete(ctx context.Context, id ident.ID) (string, error)
}

// UserAdmin adds role changes to the user collection.
type UserAdmin interface {
	AdminCollection[model.User, model.CreateUserRequest, model.UpdateUserRequest]
	ChangeRole(ctx context.Context, id ident.ID, role string) error
}

type (
	serviceCollection     = AdminCollection[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest]
	destinationCollection = AdminCollection[model.Destination, model.DestinationRequest, model.DestinationRequest]
	aircraftCollection    = AdminCollection[model.Aircraft, model.AircraftRequest, model.AircraftRequest]
)

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ SessionManager        = (*service.SessionService)(nil)
	_ CatalogBrowser        = (*service.CatalogService)(nil)
	_ CheckoutFlow          = (*service.CheckoutService)(nil)
	_ DashboardLoader       = (*service.DashboardService)(nil)
	_ OverviewLoader        = (*service.OverviewService)(nil)
	_ BookingAdmin          = (*service.BookingAdminService)(nil)
	_ UserAdmin             = (*service.UserAdminService)(nil)
	_ serviceCollection     = (*service.ResourceService[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest])(nil)
	_ destinationCollection = (*service.ResourceService[model.Destination, model.DestinationRequest, model.DestinationRequest])(nil)
	_ aircraftCollection    = (*service.ResourceService[model.Aircraft, model.AircraftRequest, model.AircraftRequest])(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
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
	Cookies      CookieSettings
	Formatter    *uiutil.Formatter
	Metrics      *metrics.Registry
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// location is the zone used to read and display flight dates.
func (h *UIHandlers) location() *time.Location {
	if h.Formatter != nil {
		return h.Formatter.Location()
	}
	return time.UTC
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	state := SessionStateFromContext(r.Context())
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		IsAdmin:     state.IsAdmin(),
	}

	if state.IsAuthenticated() {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{
			Name:  state.Identity.Name,
			Email: state.Identity.Email,
			Role:  string(state.Identity.Role),
		}
	}
	layout.Nav = viewmodel.Navigation(layout.IsAdmin)

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"Nav":             layout.Nav,
		"CSRFToken":       layout.CSRFToken,
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// renderPage renders data as a full document, or as the page content plus a
// <title> element when htmx asked for a partial.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if flash := h.Sessions.PopFlash(r.Context(), SessionIDFromContext(r.Context())); flash != nil {
			data["Flash"] = &viewmodel.Flash{Message: flash.Message, Type: flash.Type}
		}
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	title, _ := data["Title"].(string)
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}

	page, _ := data["CurrentPage"].(string)
	if err := h.T.RenderPartial(w, ContentTemplateFor(page), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// renderFragment renders one named template without the layout.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := h.T.RenderPartial(w, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment "+name)
	}
}

// notify shows message on the page that answers this request: a toast for
// htmx requests, a flash for the next full render otherwise.
func (h *UIHandlers) notify(w http.ResponseWriter, r *http.Request, message, kind string) {
	if IsHTMX(r) {
		HTMX(w).Toast(message, kind)
		return
	}
	h.flash(w, r, message, kind)
}

// notifyAndRedirect stores message as a flash and sends the browser to url.
// A toast would be lost to the navigation, so both request kinds use the flash.
func (h *UIHandlers) notifyAndRedirect(w http.ResponseWriter, r *http.Request, message, kind, url string) {
	h.flash(w, r, message, kind)
	redirect(w, r, url)
}

// flash stores a one-shot message on the session and rebinds the cookie when
// a new anonymous session had to be created for it.
func (h *UIHandlers) flash(w http.ResponseWriter, r *http.Request, message, kind string) {
	sid := SessionIDFromContext(r.Context())
	newID, err := h.Sessions.SetFlash(r.Context(), sid, domainauth.Flash{Message: message, Type: kind})
	if err != nil {
		h.logger().WarnContext(r.Context(), "store flash failed", "error", err)
		return
	}
	if newID != sid {
		h.Cookies.setSession(w, r, newID, time.Time{})
	}
}

// rejectAction reports a failed htmx submission without swapping, so the form keeps its values.
func rejectAction(w http.ResponseWriter, message string) {
	HTMX(w).Toast(message, ToastError)
	SetHXReswap(w, "none")
	w.WriteHeader(http.StatusOK)
}

// NotFound renders the not-found page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderStatusPage(w, r, http.StatusNotFound, "Halaman tidak ditemukan")
}

// renderStatusPage renders the standalone error page with the given status.
func (h *UIHandlers) renderStatusPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := basePageData(r, PageMeta{Title: "RevoBooking", PageTitle: message})
	data["Status"] = status
	data["ErrorMessage"] = message

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("error page render failed", "error", err, "status", status)
	}
}

// observe records the outcome of a user-facing action.
func (h *UIHandlers) observe(action string, err error) {
	h.Metrics.ObserveAction(metrics.ActionMetric{Action: action, Err: err})
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	// In dev mode, show detailed error in the response
	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		errHTML := html.EscapeString(err.Error())
		pathHTML := html.EscapeString(r.URL.Path)
		contextHTML := html.EscapeString(context)
		if _, writeErr := w.Write([]byte(`
			<div style="padding: 20px; background: #fee; border: 2px solid #c33; border-radius: 4px; margin: 20px; font-family: monospace;">
				<h2 style="color: #c33; margin-top: 0;">Template Rendering Error</h2>
				<p><strong>Context:</strong> ` + contextHTML + `</p>
				<p><strong>Path:</strong> ` + pathHTML + `</p>
				<p><strong>Error:</strong></p>
				<pre style="background: #fff; padding: 10px; border: 1px solid #ccc; overflow-x: auto;">` + errHTML + `</pre>
			</div>
		`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
