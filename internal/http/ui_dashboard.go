package httpx

import (
	"net/http"
)

const msgDashboardLoadFailed = "Gagal memuat riwayat pemesanan. Silakan coba lagi nanti."

// DashboardPage serves GET /dashboard: the signed-in user's bookings and totals.
func (h *UIHandlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	builder := NewTemplateData(r, PageMeta{
		Title:       "Dashboard - RevoBooking",
		PageTitle:   "Dashboard Saya",
		CurrentPage: PageDashboard,
	})

	dash, err := h.Dashboard.Load(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "dashboard load failed", "error", err)
		builder.With("LoadError", msgDashboardLoadFailed)
	} else {
		builder.With("Bookings", dash.Bookings).With("Stats", dash.Stats)
	}

	h.renderPage(w, r, builder.Build())
}
