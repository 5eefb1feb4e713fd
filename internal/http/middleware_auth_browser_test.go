package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
)

func guardedRequest(method, target string, state domainauth.SessionState) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return r.WithContext(withRequestSession(r.Context(), "sid", state))
}

func TestRequireBrowser(t *testing.T) {
	admin := domainauth.Resolved(&domainauth.Identity{ID: "1", Role: domainauth.RoleAdmin})
	user := domainauth.Resolved(&domainauth.Identity{ID: "2", Role: domainauth.RoleUser})
	guest := domainauth.SessionState{}

	tests := []struct {
		name         string
		guard        func(http.Handler) http.Handler
		state        domainauth.SessionState
		htmx         bool
		wantStatus   int
		wantLocation string
		wantHXRedir  string
	}{
		{name: "user on customer page", guard: RequireAuthBrowser(), state: user, wantStatus: http.StatusOK},
		{name: "admin on customer page", guard: RequireAuthBrowser(), state: admin, wantStatus: http.StatusOK},
		{name: "guest on customer page", guard: RequireAuthBrowser(), state: guest, wantStatus: http.StatusSeeOther, wantLocation: "/login?redirect=%2Fdashboard%3Ftab%3D1"},
		{name: "guest htmx", guard: RequireAuthBrowser(), state: guest, htmx: true, wantStatus: http.StatusNoContent, wantHXRedir: "/login?redirect=%2Fdashboard%3Ftab%3D1"},
		{name: "undetermined renders nothing", guard: RequireAuthBrowser(), state: domainauth.Undetermined(), wantStatus: http.StatusNoContent},
		{name: "admin on console", guard: RequireAdminBrowser(), state: admin, wantStatus: http.StatusOK},
		{name: "user on console", guard: RequireAdminBrowser(), state: user, wantStatus: http.StatusSeeOther, wantLocation: "/"},
		{name: "guest on console", guard: RequireAdminBrowser(), state: guest, wantStatus: http.StatusSeeOther, wantLocation: "/login?redirect=%2Fdashboard%3Ftab%3D1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			h := tt.guard(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			}))

			r := guardedRequest(http.MethodGet, "/dashboard?tab=1", tt.state)
			if tt.htmx {
				r.Header.Set("Hx-Request", "true")
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			assert.Equal(t, tt.wantHXRedir, w.Header().Get("Hx-Redirect"))
		})
	}
}

func TestRedirectPathForRequest_HTMXPostUsesCurrentURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/booking/s1/checkout", nil)
	r.Header.Set("Hx-Request", "true")
	r.Header.Set("Hx-Current-Url", "http://localhost:3000/booking?q=bali")

	assert.Equal(t, "/booking?q=bali", redirectPathForRequest(r))

	r.Header.Set("Hx-Current-Url", "//evil.example/x")
	assert.Equal(t, "/booking/s1/checkout", redirectPathForRequest(r))
}

func TestRouter_CustomerPageRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	resp := app.get("/dashboard")

	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/login?redirect=%2Fdashboard", resp.Header.Get("Location"))
}

func TestRouter_ConsoleRejectsCustomers(t *testing.T) {
	app := newTestApp(t)
	app.loginUser()

	for _, path := range []string{"/admin", "/admin/services", "/admin/users"} {
		resp := app.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.Status, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}
}

func TestRouter_ConsoleMutationsRejectCustomers(t *testing.T) {
	app := newTestApp(t)
	app.loginUser()

	resp := app.post("/admin/users/9/delete", nil)

	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}
