package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/revobooking/revo-ui/internal/domain/catalog"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
	"github.com/revobooking/revo-ui/internal/http/validation"
	"github.com/revobooking/revo-ui/internal/service"
)

const (
	msgCatalogLoadFailed  = "Gagal memuat layanan. Silakan coba lagi nanti."
	msgCatalogEmpty       = "Belum ada layanan tersedia."
	msgCatalogNoMatch     = "Tidak ada layanan yang cocok dengan pencarian Anda."
	msgLoginPrompt        = "Anda perlu login terlebih dahulu. Ingin login sekarang?"
	msgCheckoutSuccess    = "Pemesanan tiket berhasil dibuat! Silakan cek dashboard Anda."
	msgCheckoutFailed     = "Gagal membuat pemesanan. Silakan coba lagi."
	msgServiceUnavailable = "Layanan tidak ditemukan"

	// bookingResultsTarget is the element id the search form swaps.
	bookingResultsTarget = "booking-results"
	// modalTarget is the element id checkout forms open in.
	modalTarget = "modal"
)

// sortOption is one entry of the sort selector.
type sortOption struct {
	Key   catalog.SortKey
	Label string
}

//nolint:gochecknoglobals // static read-only content
var sortOptions = []sortOption{
	{Key: catalog.SortPriceAsc, Label: "Harga: Terendah"},
	{Key: catalog.SortPriceDesc, Label: "Harga: Tertinggi"},
	{Key: catalog.SortName, Label: "Nama: A-Z"},
}

// checkoutInput is the checkout form as typed, kept verbatim for re-rendering.
type checkoutInput struct {
	ServiceID      ident.ID
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
}

func bookingMeta() PageMeta {
	return PageMeta{Title: "Booking - RevoBooking", PageTitle: "Cari & Pesan Tiket Penerbangan", CurrentPage: PageBooking}
}

func checkoutMeta() PageMeta {
	return PageMeta{Title: "Pemesanan - RevoBooking", PageTitle: "Form Pemesanan Tiket", CurrentPage: PageCheckout}
}

// BookingPage serves GET /booking?q=&sort=. Requests from the search form
// targeting the results list get only that list.
func (h *UIHandlers) BookingPage(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
		Sort:   catalog.ParseSortKey(r.URL.Query().Get("sort")),
	}

	builder := NewTemplateData(r, bookingMeta()).
		With("Query", q).
		With("SortOptions", sortOptions).
		With("Destinations", popularDestinations)

	view, err := h.Catalog.Browse(r.Context(), q)
	if err != nil {
		h.logger().WarnContext(r.Context(), "catalog browse failed", "error", err)
		builder.With("LoadError", msgCatalogLoadFailed)
	} else {
		builder.With("View", view).With("EmptyMessage", emptyMessage(view.Empty))
	}
	data := builder.Build()

	if IsHTMX(r) && HXTarget(r) == bookingResultsTarget {
		HTMX(w).PushURL(bookingURL(q))
		h.renderFragment(w, r, "booking-results", data)
		return
	}
	h.renderPage(w, r, data)
}

func emptyMessage(state catalog.EmptyState) string {
	switch state {
	case catalog.NoItems:
		return msgCatalogEmpty
	case catalog.NoMatches:
		return msgCatalogNoMatch
	default:
		return ""
	}
}

func bookingURL(q catalog.Query) string {
	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Sort != "" && q.Sort != catalog.SortPriceAsc {
		params.Set("sort", string(q.Sort))
	}
	if len(params) == 0 {
		return "/booking"
	}
	return "/booking?" + params.Encode()
}

// CheckoutPage serves GET /booking/{id}/checkout. Guests get the login prompt instead of the form.
func (h *UIHandlers) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	state := SessionStateFromContext(r.Context())
	if state.Loading {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	id := ident.ID(r.PathValue("id"))
	co, err := h.Checkout.Open(r.Context(), state, id)
	switch {
	case errors.Is(err, service.ErrLoginRequired):
		h.renderLoginPrompt(w, r, id)
		return
	case err != nil:
		h.logger().WarnContext(r.Context(), "checkout open failed", "service_id", id.String(), "error", err)
		if IsHTMX(r) {
			rejectAction(w, apperrors.UserMessage(err, msgCatalogLoadFailed))
			return
		}
		if apperrors.IsNotFound(err) {
			h.renderStatusPage(w, r, http.StatusNotFound, msgServiceUnavailable)
			return
		}
		h.renderStatusPage(w, r, http.StatusBadGateway, msgCatalogLoadFailed)
		return
	}

	data := NewTemplateData(r, checkoutMeta()).
		With("Service", co.Service).
		With("Form", checkoutInput{
			ServiceID:      co.Form.ServiceID,
			PassengerName:  co.Form.PassengerName,
			PassengerEmail: co.Form.PassengerEmail,
		}).
		Build()

	if IsHTMX(r) && HXTarget(r) == modalTarget {
		h.renderFragment(w, r, "checkout-form", data)
		return
	}
	h.renderPage(w, r, data)
}

// SubmitCheckout serves POST /booking/{id}/checkout. Exactly one reservation
// request is sent per accepted submission; success lands on the dashboard.
func (h *UIHandlers) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	state := SessionStateFromContext(r.Context())
	if !state.IsAuthenticated() {
		h.renderLoginPrompt(w, r, ident.ID(r.PathValue("id")))
		return
	}

	HandleForm(h, FormHandlerOpts[checkoutInput]{
		W:      w,
		R:      r,
		Action: "checkout",
		Parser: parseCheckoutForm,
		Submit: func(ctx context.Context, in checkoutInput) (string, error) {
			return "", h.Checkout.Submit(ctx, state, in.toForm())
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			if svc, err := h.Catalog.Get(r.Context(), ident.ID(r.PathValue("id"))); err == nil {
				data["Service"] = svc
			}
			h.renderPage(w, r, data)
		},
		PageMeta:          checkoutMeta(),
		SuccessMessage:    msgCheckoutSuccess,
		FailureMessage:    msgCheckoutFailed,
		SuccessURL:        "/dashboard",
		RedirectOnSuccess: true,
	})
}

// renderLoginPrompt asks a guest to sign in before booking. htmx callers get
// the prompt in the modal; everyone else gets the prompt page.
func (h *UIHandlers) renderLoginPrompt(w http.ResponseWriter, r *http.Request, id ident.ID) {
	back := "/booking"
	if !id.IsZero() {
		back = "/booking/" + url.PathEscape(id.String()) + "/checkout"
	}
	data := NewTemplateData(r, checkoutMeta()).
		With("LoginRequired", true).
		With("LoginPrompt", msgLoginPrompt).
		With("LoginURL", loginURL(back)).
		Build()

	if IsHTMX(r) {
		HTMX(w).Retarget("#"+modalTarget, "innerHTML")
		h.renderFragment(w, r, "login-prompt", data)
		return
	}
	h.renderPage(w, r, data)
}

// parseCheckoutForm reads the passenger fields. Presence is enforced by the
// booking request; the phone number is sent as typed.
func parseCheckoutForm(r *http.Request) (checkoutInput, map[string]string) {
	in := checkoutInput{
		ServiceID:      ident.ID(r.PathValue("id")),
		PassengerName:  strings.TrimSpace(r.PostFormValue("passengerName")),
		PassengerEmail: strings.TrimSpace(r.PostFormValue("passengerEmail")),
		PassengerPhone: strings.TrimSpace(r.PostFormValue("passengerPhone")),
	}
	fv := validation.New().
		Validate("passengerEmail", in.PassengerEmail, validation.Email("Email penumpang"))
	return in, fv.Errors()
}

func (in checkoutInput) toForm() service.CheckoutForm {
	return service.CheckoutForm{
		ServiceID:      in.ServiceID,
		PassengerName:  in.PassengerName,
		PassengerEmail: in.PassengerEmail,
		PassengerPhone: in.PassengerPhone,
	}
}
