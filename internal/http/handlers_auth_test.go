package httpx

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
)

func TestLogin_AdminLandsOnConsole(t *testing.T) {
	app := newTestApp(t)

	resp := app.login(testAdminEmail, testAdminPassword)

	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
	assert.NotEmpty(t, app.cookie(DefaultSessionCookieName))
}

func TestLogin_UserLandsOnDashboard(t *testing.T) {
	app := newTestApp(t)

	resp := app.login(testUserEmail, testUserPassword)

	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestLogin_UserHonorsSafeRedirect(t *testing.T) {
	app := newTestApp(t)

	resp := app.post("/login", url.Values{
		"email":    {testUserEmail},
		"password": {testUserPassword},
		"redirect": {"/booking/s1/checkout"},
	})
	assert.Equal(t, "/booking/s1/checkout", resp.Header.Get("Location"))

	app2 := newTestApp(t)
	resp = app2.post("/login", url.Values{
		"email":    {testUserEmail},
		"password": {testUserPassword},
		"redirect": {"https://evil.example/steal"},
	})
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)

	resp := app.login(testUserEmail, "salah")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Contains(t, resp.Body, msgLoginFailed)
	assert.Contains(t, resp.Body, testUserEmail, "the typed email is kept")
	assert.Empty(t, app.cookie(DefaultSessionCookieName))
}

func TestLogin_WrongPasswordHTMX(t *testing.T) {
	app := newTestApp(t)

	resp := app.post("/login", url.Values{"email": {testUserEmail}, "password": {"salah"}}, requestOpts{htmx: true})

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "none", resp.Header.Get("Hx-Reswap"))
	assert.Contains(t, resp.Header.Get("Hx-Trigger"), msgLoginFailed)
}

func TestLogin_FlashShownOnce(t *testing.T) {
	app := newTestApp(t)
	app.bookings.EXPECT().Mine(gomock.Any()).Return(nil, nil).Times(2)

	app.loginUser()

	first := app.get("/dashboard")
	require.Equal(t, http.StatusOK, first.Status)
	assert.Contains(t, first.Body, msgLoginSuccess)

	second := app.get("/dashboard")
	assert.NotContains(t, second.Body, msgLoginSuccess)
}

func TestLoginPage_SignedInRedirects(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin()

	resp := app.get("/login")

	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestLogin_RequiresCSRFToken(t *testing.T) {
	app := newTestApp(t)

	resp := app.post("/login", url.Values{"email": {testUserEmail}, "password": {testUserPassword}}, requestOpts{skipCSRF: true})

	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Empty(t, app.cookie(DefaultSessionCookieName))
}

func TestLogin_RateLimited(t *testing.T) {
	app := newTestApp(t, withLoginRateLimit(2))

	for range 2 {
		resp := app.login(testUserEmail, "salah")
		require.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	}
	resp := app.login(testUserEmail, testUserPassword)

	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
	assert.Empty(t, app.cookie(DefaultSessionCookieName))
}

func TestRegister_PasswordMismatch(t *testing.T) {
	app := newTestApp(t)

	resp := app.post("/register", url.Values{
		"name":            {"Sari"},
		"email":           {"sari@revo.id"},
		"password":        {"123456"},
		"confirmPassword": {"654321"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Contains(t, resp.Body, "Password dan konfirmasi password tidak cocok!")
	assert.Contains(t, resp.Body, "sari@revo.id")
}

func TestRegister_ShortPassword(t *testing.T) {
	app := newTestApp(t)

	resp := app.post("/register", url.Values{
		"name":            {"Sari"},
		"email":           {"sari@revo.id"},
		"password":        {"123"},
		"confirmPassword": {"123"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Contains(t, resp.Body, "Password minimal 6 karakter!")
}

func TestRegister_SuccessThenLogin(t *testing.T) {
	app := newTestApp(t)

	resp := app.post("/register", url.Values{
		"name":            {"Sari"},
		"email":           {"sari@revo.id"},
		"password":        {"123456"},
		"confirmPassword": {"123456"},
	})
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	page := app.get("/login")
	assert.Contains(t, page.Body, msgRegisterSuccess)

	resp = app.login("sari@revo.id", "123456")
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestRegister_DuplicateEmailShowsServerMessage(t *testing.T) {
	app := newTestApp(t)

	resp := app.post("/register", url.Values{
		"name":            {"Budi"},
		"email":           {testUserEmail},
		"password":        {"123456"},
		"confirmPassword": {"123456"},
	})

	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Contains(t, resp.Body, "Email sudah terdaftar")
}

func TestLogout_ClearsSession(t *testing.T) {
	app := newTestApp(t)
	app.loginUser()

	resp := app.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	dash := app.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, dash.Status)
	assert.Equal(t, "/login?redirect=%2Fdashboard", dash.Header.Get("Location"))
}

func TestLogout_RevokedTokenIsAnonymous(t *testing.T) {
	app := newTestApp(t)
	app.loginUser()
	// The fake issues token-1 to the first login.
	app.identity.Revoke("token-1")

	resp := app.get("/dashboard")

	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Contains(t, resp.Header.Get("Location"), "/login")
}

func TestLandingFor(t *testing.T) {
	admin := domainauth.Identity{Role: domainauth.RoleAdmin}
	user := domainauth.Identity{Role: domainauth.RoleUser}

	assert.Equal(t, "/admin", landingFor(admin, "/booking"))
	assert.Equal(t, "/dashboard", landingFor(user, ""))
	assert.Equal(t, "/booking?q=bali", landingFor(user, "/booking?q=bali"))
	assert.Equal(t, "/dashboard", landingFor(user, "/login"))
	assert.Equal(t, "/dashboard", landingFor(user, "//evil.example"))
}

func TestParseRegisterForm_Order(t *testing.T) {
	r := formRequest(url.Values{"name": {""}, "email": {"x"}, "password": {"1"}, "confirmPassword": {"2"}})
	_, errs := parseRegisterForm(r)
	assert.Equal(t, map[string]string{"confirmPassword": "Password dan konfirmasi password tidak cocok!"}, errs)

	r = formRequest(url.Values{"name": {"Sari"}, "email": {"sari@revo.id"}, "password": {"123456"}, "confirmPassword": {"123456"}})
	req, errs := parseRegisterForm(r)
	assert.Empty(t, errs)
	assert.Equal(t, model.RegisterRequest{Name: "Sari", Email: "sari@revo.id", Password: "123456", ConfirmPassword: "123456"}, req)
}
