package httpx

import (
	"net/http"
)

// ToastEvent is the client-side event consumed by static/js/app.js.
const ToastEvent = "showToast"

// Toast kinds understood by the client.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// Toast is the payload of a showToast event.
type Toast struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// HTMXResponse provides a fluent API for building HTMX responses.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX creates a new HTMXResponse for fluent response building.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect instructs htmx to redirect the browser to the given URL.
// It sets the HX-Redirect header and returns a 204 No Content status.
// The handler should return immediately after calling this method.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger triggers a client-side event after swap with optional payload.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}

// Toast queues a transient notification for the client.
func (h *HTMXResponse) Toast(message, kind string) *HTMXResponse {
	return h.Trigger(ToastEvent, Toast{Message: message, Type: kind})
}

// PushURL pushes the given URL into the browser history for the new content.
func (h *HTMXResponse) PushURL(url string) *HTMXResponse {
	SetHXPushURL(h.w, url)
	return h
}

// Retarget swaps the response into selector instead of the requested target.
func (h *HTMXResponse) Retarget(selector, strategy string) *HTMXResponse {
	SetHXRetarget(h.w, selector)
	if strategy != "" {
		SetHXReswap(h.w, strategy)
	}
	return h
}

// Refresh forces a full page refresh.
// It sets the HX-Refresh header and returns a 204 No Content status.
func (h *HTMXResponse) Refresh() {
	SetHXRefresh(h.w, true)
	h.w.WriteHeader(http.StatusNoContent)
}

// redirect sends HTMX requests an HX-Redirect and everyone else a 303.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(url)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
