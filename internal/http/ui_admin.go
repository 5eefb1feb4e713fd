package httpx

import (
	"context"
	"net/http"

	"github.com/revobooking/revo-ui/internal/domain/admin"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
)

const (
	msgOverviewLoadFailed = "Gagal memuat data admin. Silakan coba lagi nanti."
	msgAdminLoadFailed    = "Gagal memuat data. Silakan coba lagi nanti."

	// adminPanelTarget is the element id admin forms and edit links swap.
	adminPanelTarget = "admin-panel"
)

// adminTab is one entry of the console's sub-navigation.
type adminTab struct {
	Label string
	Href  string
	Page  string
}

//nolint:gochecknoglobals // static read-only content
var adminTabs = []adminTab{
	{Label: "Ringkasan", Href: "/admin", Page: PageAdmin},
	{Label: "Layanan", Href: "/admin/services", Page: PageAdminServices},
	{Label: "Booking", Href: "/admin/bookings", Page: PageAdminBookings},
	{Label: "User", Href: "/admin/users", Page: PageAdminUsers},
	{Label: "Tujuan", Href: "/admin/destinations", Page: PageAdminDestinations},
	{Label: "Pesawat", Href: "/admin/aircrafts", Page: PageAdminAircraft},
}

// AdminOverviewPage serves GET /admin. Collections load in parallel; a failed
// collection only blanks its own panel.
func (h *UIHandlers) AdminOverviewPage(w http.ResponseWriter, r *http.Request) {
	builder := NewTemplateData(r, PageMeta{
		Title:       "Admin - RevoBooking",
		PageTitle:   "Admin Dashboard",
		CurrentPage: PageAdmin,
	}).
		With("Tabs", adminTabs).
		With("Statuses", model.BookingStatuses)

	overview, err := h.Overview.Load(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "admin overview load failed", "error", err)
		builder.With("LoadError", msgOverviewLoadFailed)
	} else {
		builder.With("Overview", overview)
	}

	h.renderPage(w, r, builder.Build())
}

// adminResource describes one admin collection screen.
type adminResource[T, B any] struct {
	page  string
	meta  PageMeta
	load  func(ctx context.Context) ([]T, error)
	idOf  func(T) ident.ID
	toBuf func(T) B
}

// renderAdminResource loads the collection and renders its screen. The edit
// target comes from ?edit={id}, or from a failed edit submission so the typed
// values survive. Panel-targeted htmx requests get only the panel.
func renderAdminResource[T, B any](h *UIHandlers, w http.ResponseWriter, r *http.Request, res adminResource[T, B], data map[string]any) {
	if data == nil {
		data = NewTemplateData(r, res.meta).Build()
	}
	data["Tabs"] = adminTabs

	items, err := res.load(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "admin collection load failed", "page", res.page, "error", err)
		data["LoadError"] = msgAdminLoadFailed
	}
	data["Items"] = items

	var edit admin.EditTarget[B]
	if id, ok := data["EditID"].(ident.ID); ok {
		if buf, isBuf := data["Form"].(B); isBuf {
			edit = admin.StartEdit(id, buf)
			delete(data, "Form")
		}
	}
	if !edit.Active() && res.idOf != nil {
		edit = admin.StartEditFor(items, ident.ID(r.URL.Query().Get("edit")), res.idOf, res.toBuf)
	}
	data["Edit"] = edit
	if _, ok := data["Form"].(B); !ok {
		var zero B
		data["Form"] = zero
	}

	if IsHTMX(r) && HXTarget(r) == adminPanelTarget {
		h.renderFragment(w, r, res.page+"-panel", data)
		return
	}
	h.renderPage(w, r, data)
}

// adminMutation is one write on an admin collection.
type adminMutation[T, B, F any] struct {
	res      adminResource[T, B]
	action   string
	parse    FormParser[F]
	submit   func(ctx context.Context, form F) (string, error)
	success  string
	failure  string
	returnTo string
	// editing marks submissions from the inline edit row.
	editing bool
}

// handleAdminMutation runs m through HandleForm and redraws the collection afterwards.
func handleAdminMutation[T, B, F any](h *UIHandlers, w http.ResponseWriter, r *http.Request, m adminMutation[T, B, F]) {
	var extra map[string]any
	if m.editing {
		extra = map[string]any{"EditID": ident.ID(r.PathValue("id"))}
	}
	HandleForm(h, FormHandlerOpts[F]{
		W:      w,
		R:      r,
		Action: m.action,
		Parser: m.parse,
		Submit: m.submit,
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			renderAdminResource(h, w, r, m.res, data)
		},
		PageMeta:       m.res.meta,
		SuccessMessage: m.success,
		FailureMessage: m.failure,
		SuccessURL:     m.returnTo,
		ExtraData:      extra,
	})
}

// pathID parses the {id} path value as the submitted form.
func pathID(r *http.Request) (ident.ID, map[string]string) {
	return ident.ID(r.PathValue("id")), nil
}
