package httpx

import (
	"net/http"
)

const msgHomeLoadFailed = "Gagal memuat layanan. Pastikan backend berjalan."

// popularDestination is a static home page tile.
type popularDestination struct {
	City string
	Code string
}

//nolint:gochecknoglobals // static read-only content
var popularDestinations = []popularDestination{
	{City: "Jakarta", Code: "CGK"},
	{City: "Bali", Code: "DPS"},
	{City: "Singapore", Code: "SIN"},
	{City: "Tokyo", Code: "NRT"},
	{City: "Bangkok", Code: "BKK"},
	{City: "Sydney", Code: "SYD"},
}

// HomePage serves GET /: a preview of the catalog and the popular destinations.
func (h *UIHandlers) HomePage(w http.ResponseWriter, r *http.Request) {
	builder := NewTemplateData(r, PageMeta{Title: "RevoBooking", PageTitle: "RevoBooking", CurrentPage: PageHome}).
		With("Destinations", popularDestinations)

	services, err := h.Catalog.Preview(r.Context(), HomePreviewLimit)
	if err != nil {
		h.logger().WarnContext(r.Context(), "home catalog preview failed", "error", err)
		builder.With("LoadError", msgHomeLoadFailed)
	}
	builder.With("Services", services)

	h.renderPage(w, r, builder.Build())
}
