package httpx

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultCSRFCookieName is the default name for the CSRF cookie.
	DefaultCSRFCookieName = "csrf_token"
	// DefaultCSRFHeaderName is the default name for the CSRF header (canonical form).
	DefaultCSRFHeaderName = "X-Csrf-Token"

	csrfCookieMaxAge = 3600 * 12
	msgCSRFRejected  = "Sesi formulir kedaluwarsa. Muat ulang halaman lalu coba lagi."
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	// CookieDomain is the domain for the CSRF cookie
	CookieDomain string
	// Logger records rejected requests (optional)
	Logger *slog.Logger
}

// CSRFProtection returns a middleware that protects against CSRF attacks using the double-submit cookie pattern.
// It keeps a random token in a cookie and validates it on state-changing requests.
// The token can be submitted via:
// - X-Csrf-Token header (HTMX requests, set from the body's hx-headers)
// - csrf_token form field (standard form submissions)
//
// GET, HEAD, OPTIONS, and TRACE requests are exempt from CSRF validation.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := getCSRFToken(r)
			if token == "" {
				var err error
				token, err = generateCSRFToken()
				if err != nil {
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				setCSRFCookie(w, r, cfg.CookieDomain, token)
			}

			r = r.WithContext(setCSRFTokenInContext(r.Context(), token))

			if requiresCSRFValidation(r.Method) && !validateCSRFToken(r, token) {
				logger.WarnContext(r.Context(), "csrf validation failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				if IsHTMX(r) {
					HTMX(w).Toast(msgCSRFRejected, ToastError)
				}
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requiresCSRFValidation returns true if the HTTP method requires CSRF validation.
func requiresCSRFValidation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

func getCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(DefaultCSRFCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// generateCSRFToken joins two random UUIDs. It fails closed when the system
// random source is unavailable.
func generateCSRFToken() (string, error) {
	a, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	b, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	return strings.ReplaceAll(a.String()+b.String(), "-", ""), nil
}

func setCSRFCookie(w http.ResponseWriter, r *http.Request, domain, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     DefaultCSRFCookieName,
		Value:    token,
		Path:     "/",
		Domain:   domain,
		HttpOnly: false, // HTMX reads it through the rendered hx-headers attribute
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   csrfCookieMaxAge,
	})
}

// isSecureRequest reports whether the request arrived over HTTPS, directly or via a proxy.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// validateCSRFToken compares the header or form token with the cookie in constant time.
func validateCSRFToken(r *http.Request, cookieToken string) bool {
	if cookieToken == "" {
		return false
	}

	if headerToken := r.Header.Get(DefaultCSRFHeaderName); headerToken != "" {
		return subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) == 1
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return false
		}
		if formToken := r.FormValue(DefaultCSRFCookieName); formToken != "" {
			return subtle.ConstantTimeCompare([]byte(formToken), []byte(cookieToken)) == 1
		}
	}

	return false
}

type csrfTokenKey struct{}

func setCSRFTokenInContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// GetCSRFToken retrieves the CSRF token from the request context.
// Templates embed it in forms and in the body's hx-headers.
func GetCSRFToken(r *http.Request) string {
	if token, ok := r.Context().Value(csrfTokenKey{}).(string); ok {
		return token
	}
	return ""
}
