package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"

	"github.com/revobooking/revo-ui/internal/domain/ident"
)

// Role represents an application's authorization role as reported by the API.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole normalizes a role string and reports whether it is supported.
func ParseRole(value string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	switch r {
	case RoleAdmin, RoleUser:
		return r, true
	default:
		return "", false
	}
}

// Identity is the authenticated user's profile as returned by GET /users/me.
type Identity struct {
	ID    ident.ID `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  Role     `json:"role"`
}

// UnmarshalJSON accepts both "id" and "_id" keys.
func (i *Identity) UnmarshalJSON(b []byte) error {
	type alias Identity
	return ident.Unmarshal(b, (*alias)(i), &i.ID)
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && strings.EqualFold(string(i.Role), string(RoleAdmin))
}

// Session is the server-side record persisted for a browser session.
// Token is the bearer credential issued by the API; it never leaves the server.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Identity  *Identity `json:"identity,omitempty"`
	Flash     *Flash    `json:"flash,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HasToken reports whether the session holds a credential.
func (s Session) HasToken() bool { return s.Token != "" }

// Flash is a one-shot notification carried across a full-page redirect.
type Flash struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SessionState is the resolved view of "who is logged in" for one request.
// Loading is true only when resolution did not complete.
type SessionState struct {
	Loading  bool
	Identity *Identity
}

// Resolved builds a completed state for the given identity (nil for anonymous).
func Resolved(id *Identity) SessionState {
	return SessionState{Identity: id}
}

// Undetermined is the state before resolution finishes.
func Undetermined() SessionState {
	return SessionState{Loading: true}
}

// IsAuthenticated reports whether a user is known.
func (s SessionState) IsAuthenticated() bool {
	return !s.Loading && s.Identity != nil
}

// IsAdmin reports whether the resolved user is an administrator.
func (s SessionState) IsAdmin() bool {
	return s.IsAuthenticated() && s.Identity.IsAdmin()
}
