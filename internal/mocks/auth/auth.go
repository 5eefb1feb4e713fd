package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
	"github.com/revobooking/revo-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityAPI        = (*FakeIdentityAPI)(nil)
	_ ports.CredentialProvider = StaticCredentials("")
)

// FakeIdentityAPI simulates the account endpoints with an in-memory user table.
// Tokens are deterministic ("token-<n>") and resolve back to the user that logged in.
// The Func fields override the default behavior when set.
type FakeIdentityAPI struct {
	LoginFunc    func(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	RegisterFunc func(ctx context.Context, req model.RegisterRequest) error
	MeFunc       func(ctx context.Context) (domainauth.Identity, error)

	mu        sync.Mutex
	users     map[string]fakeUser
	tokens    map[string]string
	callCount int
}

type fakeUser struct {
	identity domainauth.Identity
	password string
}

// NewFakeIdentityAPI creates a fake with no registered users.
func NewFakeIdentityAPI() *FakeIdentityAPI {
	return &FakeIdentityAPI{
		users:  make(map[string]fakeUser),
		tokens: make(map[string]string),
	}
}

// AddUser registers an account directly.
func (f *FakeIdentityAPI) AddUser(identity domainauth.Identity, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensure()
	f.users[strings.ToLower(identity.Email)] = fakeUser{identity: identity, password: password}
}

// Revoke invalidates a token so Me reports it as unauthorized.
func (f *FakeIdentityAPI) Revoke(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

func (f *FakeIdentityAPI) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, req)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensure()

	u, ok := f.users[strings.ToLower(req.Email)]
	if !ok || u.password != req.Password {
		return model.LoginResponse{}, apperrors.Unauthorized("Email atau password salah")
	}

	f.callCount++
	token := fmt.Sprintf("token-%d", f.callCount)
	f.tokens[token] = strings.ToLower(req.Email)
	return model.LoginResponse{Token: token}, nil
}

func (f *FakeIdentityAPI) Register(ctx context.Context, req model.RegisterRequest) error {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, req)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensure()

	key := strings.ToLower(req.Email)
	if _, exists := f.users[key]; exists {
		return apperrors.Conflict("Email sudah terdaftar")
	}
	f.users[key] = fakeUser{
		identity: domainauth.Identity{Name: req.Name, Email: req.Email, Role: domainauth.RoleUser},
		password: req.Password,
	}
	return nil
}

func (f *FakeIdentityAPI) Me(ctx context.Context) (domainauth.Identity, error) {
	if f.MeFunc != nil {
		return f.MeFunc(ctx)
	}

	token, ok := domainauth.TokenFromContext(ctx)
	if !ok {
		return domainauth.Identity{}, apperrors.Unauthorized("")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensure()

	email, ok := f.tokens[token]
	if !ok {
		return domainauth.Identity{}, apperrors.Unauthorized("")
	}
	return f.users[email].identity, nil
}

func (f *FakeIdentityAPI) ensure() {
	if f.users == nil {
		f.users = make(map[string]fakeUser)
	}
	if f.tokens == nil {
		f.tokens = make(map[string]string)
	}
}

// StaticCredentials always supplies the same bearer token. The empty value sends no token.
type StaticCredentials string

// Token implements ports.CredentialProvider.
func (s StaticCredentials) Token(context.Context) (string, bool) {
	return string(s), s != ""
}
