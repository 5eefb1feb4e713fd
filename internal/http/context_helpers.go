package httpx

import (
	"context"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// requestSession is what the session middleware resolved for one request.
type requestSession struct {
	id    string
	state domainauth.SessionState
}

// withRequestSession returns a child context carrying the resolved session id and state.
func withRequestSession(ctx context.Context, id string, state domainauth.SessionState) context.Context {
	return context.WithValue(ctx, sessionKey{}, requestSession{id: id, state: state})
}

// SessionStateFromContext returns the resolved session state. A request that
// never went through the session middleware is reported as undetermined.
func SessionStateFromContext(ctx context.Context) domainauth.SessionState {
	if rs, ok := ctx.Value(sessionKey{}).(requestSession); ok {
		return rs.state
	}
	return domainauth.Undetermined()
}

// SessionIDFromContext returns the session id bound to the request, if any.
func SessionIDFromContext(ctx context.Context) string {
	if rs, ok := ctx.Value(sessionKey{}).(requestSession); ok {
		return rs.id
	}
	return ""
}

// CurrentIdentity returns the authenticated identity, or nil.
func CurrentIdentity(ctx context.Context) *domainauth.Identity {
	state := SessionStateFromContext(ctx)
	if !state.IsAuthenticated() {
		return nil
	}
	return state.Identity
}

// IsGuestUser reports whether the current request context is unauthenticated.
func IsGuestUser(ctx context.Context) bool {
	return CurrentIdentity(ctx) == nil
}
