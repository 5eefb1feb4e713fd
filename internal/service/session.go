package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
	"github.com/revobooking/revo-ui/internal/ports"
)

// DefaultSessionTTL bounds a browser session when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionServiceConfig groups the tunables of SessionService.
type SessionServiceConfig struct {
	TTL    time.Duration
	Logger *slog.Logger
	// Now overrides the clock (tests).
	Now func() time.Time
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Store  ports.SessionStore
	API    ports.IdentityAPI
	Config SessionServiceConfig
}

// SessionService is the single source of truth for "who is logged in".
// It owns the bearer token: the token is written on login, cleared on logout or
// rejection, and resolved to an Identity on every request.
type SessionService struct {
	store  ports.SessionStore
	api    ports.IdentityAPI
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Store == nil {
		panic("SessionStore is required")
	}
	if opts.API == nil {
		panic("IdentityAPI is required")
	}

	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}

	return &SessionService{
		store:  opts.Store,
		api:    opts.API,
		ttl:    ttl,
		logger: logger.With("component", "session_service"),
		now:    now,
	}
}

// Resolution is the outcome of resolving a session id for one request.
// Session is nil when no stored session exists for the id.
type Resolution struct {
	State   domainauth.SessionState
	Session *domainauth.Session
}

// Token returns the bearer token of a resolved, authenticated session.
func (r Resolution) Token() string {
	if r.Session == nil || !r.State.IsAuthenticated() {
		return ""
	}
	return r.Session.Token
}

// Establish resolves the identity behind sessionID.
//
// A missing session or token resolves to anonymous. A token rejected by the
// API (401/403) is cleared from the session. Network failures resolve to
// anonymous but keep the token for the next request. The returned state is
// Loading only when ctx ended before resolution completed.
func (s *SessionService) Establish(ctx context.Context, sessionID string) Resolution {
	if sessionID == "" {
		return Resolution{State: domainauth.Resolved(nil)}
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if ctx.Err() != nil {
			return Resolution{State: domainauth.Undetermined()}
		}
		if !errors.Is(err, ports.ErrSessionNotFound) {
			s.logger.WarnContext(ctx, "session lookup failed", "error", err)
		}
		return Resolution{State: domainauth.Resolved(nil)}
	}

	if !s.now().Before(sess.ExpiresAt) {
		if delErr := s.store.Delete(ctx, sessionID); delErr != nil {
			s.logger.WarnContext(ctx, "delete expired session failed", "error", delErr)
		}
		return Resolution{State: domainauth.Resolved(nil)}
	}

	if !sess.HasToken() {
		return Resolution{State: domainauth.Resolved(nil), Session: &sess}
	}

	identity, err := s.api.Me(domainauth.ContextWithToken(ctx, sess.Token))
	switch {
	case err == nil:
		s.rememberIdentity(ctx, &sess, identity)
		return Resolution{State: domainauth.Resolved(&identity), Session: &sess}
	case ctx.Err() != nil:
		return Resolution{State: domainauth.Undetermined(), Session: &sess}
	case apperrors.IsAuthFailure(err):
		s.logger.InfoContext(ctx, "credential rejected, clearing session token")
		s.clearCredential(ctx, &sess)
		return Resolution{State: domainauth.Resolved(nil), Session: &sess}
	default:
		s.logger.WarnContext(ctx, "identity lookup failed", "error", err)
		return Resolution{State: domainauth.Resolved(nil), Session: &sess}
	}
}

// Refresh re-runs Establish. Repeated calls with an unchanged valid token yield the same identity.
func (s *SessionService) Refresh(ctx context.Context, sessionID string) Resolution {
	return s.Establish(ctx, sessionID)
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Session  domainauth.Session
	Identity domainauth.Identity
}

// Login exchanges credentials for a token, resolves the identity behind it and
// persists a fresh session. previousSessionID, when set, is deleted so a login
// never reuses a pre-authentication session id. A pending flash carries over.
func (s *SessionService) Login(ctx context.Context, req model.LoginRequest, previousSessionID string) (*LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	identity, err := s.api.Me(domainauth.ContextWithToken(ctx, resp.Token))
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	sess := domainauth.Session{
		ID:        generateSessionID(),
		Token:     resp.Token,
		Identity:  &identity,
		ExpiresAt: s.now().Add(s.ttl),
	}

	if previousSessionID != "" {
		if prev, getErr := s.store.Get(ctx, previousSessionID); getErr == nil {
			sess.Flash = prev.Flash
		}
		if delErr := s.store.Delete(ctx, previousSessionID); delErr != nil {
			s.logger.WarnContext(ctx, "delete previous session failed", "error", delErr)
		}
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", identity.ID.String(), "role", string(identity.Role))
	return &LoginResult{Session: sess, Identity: identity}, nil
}

// Register validates the form locally and creates the account remotely.
func (s *SessionService) Register(ctx context.Context, req model.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.api.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout removes the session and with it the stored token. No API call is made.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SetFlash stores a one-shot notification on the session, creating an anonymous
// session when none exists. It returns the id of the session that now holds the flash.
func (s *SessionService) SetFlash(ctx context.Context, sessionID string, flash domainauth.Flash) (string, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ports.ErrSessionNotFound) {
			return "", fmt.Errorf("get session: %w", err)
		}
		sess = domainauth.Session{
			ID:        generateSessionID(),
			ExpiresAt: s.now().Add(s.ttl),
		}
	}

	sess.Flash = &flash
	if err := s.store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return sess.ID, nil
}

// PopFlash returns and clears the pending notification, if any.
func (s *SessionService) PopFlash(ctx context.Context, sessionID string) *domainauth.Flash {
	if sessionID == "" {
		return nil
	}
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil || sess.Flash == nil {
		return nil
	}

	flash := sess.Flash
	sess.Flash = nil
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.WarnContext(ctx, "clear flash failed", "error", err)
	}
	return flash
}

func (s *SessionService) rememberIdentity(ctx context.Context, sess *domainauth.Session, identity domainauth.Identity) {
	if sess.Identity != nil && *sess.Identity == identity {
		return
	}
	sess.Identity = &identity
	if err := s.store.Save(ctx, *sess); err != nil {
		s.logger.WarnContext(ctx, "update session identity failed", "error", err)
	}
}

func (s *SessionService) clearCredential(ctx context.Context, sess *domainauth.Session) {
	sess.Token = ""
	sess.Identity = nil
	if err := s.store.Save(ctx, *sess); err != nil {
		s.logger.WarnContext(ctx, "clear session credential failed", "error", err)
	}
}

// generateSessionID creates a random, URL-safe session id.
func generateSessionID() string {
	return uuid.New().String()
}
