package httpx

import (
	"net/http"
	"time"
)

// DefaultSessionCookieName names the cookie that carries the session id.
const DefaultSessionCookieName = "session_id"

// CookieSettings controls the session cookie.
type CookieSettings struct {
	Name   string
	Domain string
}

func (c CookieSettings) name() string {
	if c.Name == "" {
		return DefaultSessionCookieName
	}
	return c.Name
}

// sessionID returns the session id presented by the browser, if any.
func (c CookieSettings) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSession writes the session cookie. A zero expiry yields a browser-session cookie.
func (c CookieSettings) setSession(w http.ResponseWriter, r *http.Request, id string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     c.name(),
		Value:    id,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if !expires.IsZero() {
		cookie.MaxAge = max(int(time.Until(expires).Seconds()), 1)
	}
	http.SetCookie(w, cookie)
}

// clearSession expires the session cookie. Attributes mirror setSession so
// browsers match the cookie being deleted.
func (c CookieSettings) clearSession(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
