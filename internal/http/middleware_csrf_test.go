package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestHandler() http.Handler {
	return CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	}))
}

func csrfCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	resp := w.Result()
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c
		}
	}
	return nil
}

func TestCSRFProtection_GetIssuesToken(t *testing.T) {
	w := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookie := csrfCookieFrom(t, w)
	require.NotNil(t, cookie)
	assert.Len(t, cookie.Value, 64)
	assert.Equal(t, cookie.Value, w.Body.String(), "token must be exposed to templates")
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestCSRFProtection_ReusesExistingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	w := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(w, req)

	assert.Nil(t, csrfCookieFrom(t, w))
	assert.Equal(t, "existing", w.Body.String())
}

func TestCSRFProtection_PostWithoutTokenFails(t *testing.T) {
	w := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFProtection_HeaderToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "matching", header: "tok", want: http.StatusOK},
		{name: "mismatch", header: "other", want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/services", nil)
			req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
			req.Header.Set(DefaultCSRFHeaderName, tt.header)
			w := httptest.NewRecorder()
			csrfTestHandler().ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCSRFProtection_FormToken(t *testing.T) {
	form := url.Values{"csrf_token": {"tok"}, "name": {"Jakarta"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/destinations", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
	w := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFProtection_HTMXRejectionRaisesToast(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/services", nil)
	req.Header.Set("Hx-Request", "true")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
	w := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("Hx-Trigger"), ToastEvent)
}

func TestIsSecureRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, isSecureRequest(req))
	req.Header.Set("X-Forwarded-Proto", "http, https")
	assert.True(t, isSecureRequest(req))
}
