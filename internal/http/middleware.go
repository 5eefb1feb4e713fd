package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/guard"
	"github.com/revobooking/revo-ui/internal/observability/metrics"
	"github.com/revobooking/revo-ui/internal/service"
)

// requestInfo is shared between Logging and the router so the outer
// middleware can label requests with the matched route pattern.
type requestInfo struct {
	route string
}

type requestInfoKey struct{}

// recordRoute stores the pattern the mux matched for r.
func recordRoute(r *http.Request) {
	if info, ok := r.Context().Value(requestInfoKey{}).(*requestInfo); ok {
		info.route = r.Pattern
	}
}

// Logging returns a middleware that logs HTTP requests and responses and
// records them in reg when non-nil.
func Logging(logger *slog.Logger, reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			info := &requestInfo{}
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestInfoKey{}, info)))

			elapsed := time.Since(start)
			reg.ObserveHTTPRequest(r.Method, info.route, ww.status, elapsed)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", info.route),
				slog.Int("status", ww.status),
				slog.Int("bytes", ww.bytes),
				slog.Duration("duration", elapsed),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *respWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver resolves the identity behind a session id.
type SessionResolver interface {
	Establish(ctx context.Context, sessionID string) service.Resolution
}

// SessionMiddlewareConfig configures SessionMiddleware.
type SessionMiddlewareConfig struct {
	Sessions SessionResolver
	Cookies  CookieSettings
	Metrics  *metrics.Registry
}

// SessionMiddleware resolves the session cookie once per request and places the
// resulting state, session id and bearer token in the request context.
// A cookie that no longer names a stored session is cleared.
func SessionMiddleware(cfg SessionMiddlewareConfig) func(http.Handler) http.Handler {
	if cfg.Sessions == nil {
		panic("SessionMiddleware requires a SessionResolver")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := cfg.Cookies.sessionID(r)
			res := cfg.Sessions.Establish(r.Context(), sid)

			if sid != "" && res.Session == nil && !res.State.Loading {
				cfg.Cookies.clearSession(w, r)
			}
			if res.Session != nil {
				sid = res.Session.ID
			} else {
				sid = ""
			}

			cfg.Metrics.ObserveSession(sessionOutcome(res.State))

			ctx := withRequestSession(r.Context(), sid, res.State)
			if token := res.Token(); token != "" {
				ctx = domainauth.ContextWithToken(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionOutcome(state domainauth.SessionState) string {
	switch {
	case state.Loading:
		return metrics.SessionUndetermined
	case state.IsAuthenticated():
		return metrics.SessionAuthenticated
	default:
		return metrics.SessionAnonymous
	}
}

// RequireAuthBrowser admits any authenticated user.
func RequireAuthBrowser() func(http.Handler) http.Handler {
	return requireBrowser(guard.RequireUser)
}

// RequireAdminBrowser admits only administrators.
func RequireAdminBrowser() func(http.Handler) http.Handler {
	return requireBrowser(guard.RequireAdmin)
}

// requireBrowser turns a guard decision into a response: nothing while the
// session is undetermined, the login page for guests, home for the wrong role.
func requireBrowser(req guard.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch guard.Evaluate(SessionStateFromContext(r.Context()), req) {
			case guard.Authorized:
				next.ServeHTTP(w, r)
			case guard.RedirectLogin:
				redirectToLogin(w, r)
			case guard.RedirectHome:
				redirect(w, r, "/")
			default:
				w.WriteHeader(http.StatusNoContent)
			}
		})
	}
}

// redirectToLogin sends the browser to /login, remembering where it was headed.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, loginURL(redirectPathForRequest(r)))
}

func loginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?redirect=" + url.QueryEscape(next)
}

func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) && r.Method != http.MethodGet {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}

	// For absolute URLs, use just the path/query portion to keep redirects within the app.
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}

	return safeRedirectPath(raw)
}
