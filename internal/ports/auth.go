package ports

// Package ports defines interfaces (hexagonal ports) for session and remote API behavior.
// Implementations live in internal/adapters and internal/apiclient; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
)

// ErrSessionNotFound is returned by SessionStore.Get when no live session exists for the id.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves browser sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// CredentialProvider supplies the bearer token for an outbound API request.
// ok is false when the request should be sent unauthenticated.
type CredentialProvider interface {
	Token(ctx context.Context) (token string, ok bool)
}

// IdentityAPI covers the account endpoints of the remote API.
type IdentityAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	// Register creates a new account.
	Register(ctx context.Context, req model.RegisterRequest) error
	// Me resolves the identity behind the request's credential.
	Me(ctx context.Context) (domainauth.Identity, error)
}
