package httpx

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"

	"github.com/revobooking/revo-ui/internal/adapters/memory"
	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/http/uiutil"
	"github.com/revobooking/revo-ui/internal/mocks"
	authmocks "github.com/revobooking/revo-ui/internal/mocks/auth"
	"github.com/revobooking/revo-ui/internal/service"
)

const (
	testAdminEmail    = "admin@revo.id"
	testAdminPassword = "rahasia"
	testUserEmail     = "budi@revo.id"
	testUserPassword  = "123456"
)

// testApp is the full router over real services, with the backend replaced by mocks.
type testApp struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client

	identity     *authmocks.FakeIdentityAPI
	services     *mocks.MockResourceAPI[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest]
	bookings     *mocks.MockBookingAPI
	users        *mocks.MockResourceAPI[model.User, model.CreateUserRequest, model.UpdateUserRequest]
	destinations *mocks.MockResourceAPI[model.Destination, model.DestinationRequest, model.DestinationRequest]
	aircraft     *mocks.MockResourceAPI[model.Aircraft, model.AircraftRequest, model.AircraftRequest]
}

type testAppOption func(*RouterServices)

func withLoginRateLimit(perMinute int) testAppOption {
	return func(rs *RouterServices) { rs.LoginRatePerMinute = perMinute }
}

func newTestApp(t *testing.T, opts ...testAppOption) *testApp {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
	}

	ctrl := gomock.NewController(t)
	app := &testApp{
		t:            t,
		identity:     authmocks.NewFakeIdentityAPI(),
		services:     mocks.NewMockResourceAPI[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest](ctrl),
		bookings:     mocks.NewMockBookingAPI(ctrl),
		users:        mocks.NewMockResourceAPI[model.User, model.CreateUserRequest, model.UpdateUserRequest](ctrl),
		destinations: mocks.NewMockResourceAPI[model.Destination, model.DestinationRequest, model.DestinationRequest](ctrl),
		aircraft:     mocks.NewMockResourceAPI[model.Aircraft, model.AircraftRequest, model.AircraftRequest](ctrl),
	}
	app.identity.AddUser(domainauth.Identity{ID: "1", Name: "Admin", Email: testAdminEmail, Role: domainauth.RoleAdmin}, testAdminPassword)
	app.identity.AddUser(domainauth.Identity{ID: "2", Name: "Budi", Email: testUserEmail, Role: domainauth.RoleUser}, testUserPassword)

	rs := RouterServices{
		Sessions: service.NewSessionService(service.SessionServiceOptions{
			Store:  memory.NewSessionStore(),
			API:    app.identity,
			Config: service.SessionServiceConfig{TTL: time.Hour},
		}),
		Catalog:   service.NewCatalogService(service.CatalogServiceOptions{Services: app.services, Locale: language.Indonesian}),
		Checkout:  service.NewCheckoutService(service.CheckoutServiceOptions{Bookings: app.bookings, Services: app.services}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{Bookings: app.bookings}),
		Overview: service.NewOverviewService(service.OverviewServiceOptions{APIs: service.AdminAPIs{
			Services:     app.services,
			Bookings:     app.bookings,
			Users:        app.users,
			Destinations: app.destinations,
			Aircraft:     app.aircraft,
		}}),
		Services:     service.NewResourceService(app.services, "services", nil),
		Bookings:     service.NewBookingAdminService(app.bookings, nil),
		Users:        service.NewUserAdminService(app.users, nil),
		Destinations: service.NewResourceService(app.destinations, "destinations", nil),
		Aircraft:     service.NewResourceService(app.aircraft, "aircrafts", nil),
		Formatter:    uiutil.NewFormatter(time.UTC, language.Indonesian),
		TemplateFS:   os.DirFS(TemplatePathFromTest),
	}
	for _, opt := range opts {
		opt(&rs)
	}

	handler, err := NewRouter(rs)
	require.NoError(t, err)
	app.server = httptest.NewServer(handler)
	t.Cleanup(app.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	app.client = &http.Client{
		Jar:     jar,
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return app
}

// testResponse is a response with its body already read.
type testResponse struct {
	Status int
	Header http.Header
	Body   string
}

type requestOpts struct {
	htmx   bool
	target string
	// skipCSRF sends the form without a token.
	skipCSRF bool
}

func (a *testApp) do(req *http.Request, opts requestOpts) testResponse {
	a.t.Helper()
	if opts.htmx {
		req.Header.Set("Hx-Request", "true")
	}
	if opts.target != "" {
		req.Header.Set("Hx-Target", opts.target)
	}
	resp, err := a.client.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return testResponse{Status: resp.StatusCode, Header: resp.Header, Body: string(body)}
}

func (a *testApp) get(path string, opts ...requestOpts) testResponse {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(a.t, err)
	var o requestOpts
	if len(opts) > 0 {
		o = opts[0]
	}
	return a.do(req, o)
}

// post submits form with the CSRF token the browser would send.
func (a *testApp) post(path string, form url.Values, opts ...requestOpts) testResponse {
	a.t.Helper()
	var o requestOpts
	if len(opts) > 0 {
		o = opts[0]
	}
	if form == nil {
		form = url.Values{}
	}
	if !o.skipCSRF {
		form.Set(DefaultCSRFCookieName, a.csrfToken())
	}
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, o)
}

// csrfToken returns the token cookie, fetching the login page first when the jar has none.
func (a *testApp) csrfToken() string {
	a.t.Helper()
	if v := a.cookie(DefaultCSRFCookieName); v != "" {
		return v
	}
	a.get("/login")
	v := a.cookie(DefaultCSRFCookieName)
	require.NotEmpty(a.t, v, "login page should issue a CSRF cookie")
	return v
}

func (a *testApp) cookie(name string) string {
	u, err := url.Parse(a.server.URL)
	require.NoError(a.t, err)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// login signs in and returns the login response.
func (a *testApp) login(email, password string) testResponse {
	a.t.Helper()
	return a.post("/login", url.Values{"email": {email}, "password": {password}})
}

func (a *testApp) loginAdmin() {
	a.t.Helper()
	resp := a.login(testAdminEmail, testAdminPassword)
	require.Equal(a.t, http.StatusSeeOther, resp.Status)
}

func (a *testApp) loginUser() {
	a.t.Helper()
	resp := a.login(testUserEmail, testUserPassword)
	require.Equal(a.t, http.StatusSeeOther, resp.Status)
}

func sampleServices() []model.Service {
	flight := time.Date(2026, time.December, 1, 8, 0, 0, 0, time.UTC)
	return []model.Service{
		{ID: "s1", Name: "Jakarta - Bali", Description: "Penerbangan langsung", Price: model.NewMoney(1500000), FlightDate: &flight},
		{ID: "s2", Name: "Jakarta - Tokyo", Description: "Transit Singapura", Price: model.NewMoney(7500000)},
	}
}

// formRequest builds a bare urlencoded POST for parser tests.
func formRequest(form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}
