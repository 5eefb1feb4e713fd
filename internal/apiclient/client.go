// Package apiclient is the HTTP+JSON client for the remote booking API.
// Every request carries the bearer token supplied by the injected CredentialProvider.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
	"github.com/revobooking/revo-ui/internal/ports"
)

const (
	defaultTimeout          = 15 * time.Second
	defaultErrorMessagePath = "message || error || msg"
	maxErrorBodyBytes       = 1 << 20
)

// RequestObserver receives one observation per outbound call.
// status is 0 when the request failed before a response arrived.
type RequestObserver interface {
	ObserveAPICall(op string, status int, elapsed time.Duration)
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root including the /api segment, e.g. http://localhost:5000/api.
	BaseURL string
	// Timeout bounds each request when HTTPClient is nil.
	Timeout time.Duration
	// Credentials supplies the bearer token. Defaults to ContextCredentials.
	Credentials ports.CredentialProvider
	// ErrorMessagePath is a JMESPath expression selecting the message from error bodies.
	ErrorMessagePath string
	// HTTPClient overrides the traced default client (tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
	Observer   RequestObserver
}

// Client talks to the remote booking API.
type Client struct {
	baseURL     string
	http        *http.Client
	creds       ports.CredentialProvider
	messagePath string
	logger      *slog.Logger
	observer    RequestObserver

	services     *Resource[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest]
	users        *Resource[model.User, model.CreateUserRequest, model.UpdateUserRequest]
	destinations *Resource[model.Destination, model.DestinationRequest, model.DestinationRequest]
	aircraft     *Resource[model.Aircraft, model.AircraftRequest, model.AircraftRequest]
	bookings     *Bookings
}

// New builds a Client. The default transport is wrapped with OpenTelemetry instrumentation.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api base url is required")
	}

	path := strings.TrimSpace(opts.ErrorMessagePath)
	if path == "" {
		path = defaultErrorMessagePath
	}
	if _, err := jmespath.Compile(path); err != nil {
		return nil, fmt.Errorf("compile error message path %q: %w", path, err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	creds := opts.Credentials
	if creds == nil {
		creds = ContextCredentials{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:     base,
		http:        hc,
		creds:       creds,
		messagePath: path,
		logger:      logger.With("component", "apiclient"),
		observer:    opts.Observer,
	}
	c.services = NewResource[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest](c, "/services", "services")
	c.users = NewResource[model.User, model.CreateUserRequest, model.UpdateUserRequest](c, "/users", "users")
	c.destinations = NewResource[model.Destination, model.DestinationRequest, model.DestinationRequest](c, "/destinations", "destinations")
	c.aircraft = NewResource[model.Aircraft, model.AircraftRequest, model.AircraftRequest](c, "/aircrafts", "aircrafts")
	c.bookings = &Bookings{c: c}
	return c, nil
}

// Services returns the /services collection.
func (c *Client) Services() *Resource[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest] {
	return c.services
}

// Users returns the /users collection.
func (c *Client) Users() *Resource[model.User, model.CreateUserRequest, model.UpdateUserRequest] {
	return c.users
}

// Destinations returns the /destinations collection.
func (c *Client) Destinations() *Resource[model.Destination, model.DestinationRequest, model.DestinationRequest] {
	return c.destinations
}

// Aircraft returns the /aircrafts collection.
func (c *Client) Aircraft() *Resource[model.Aircraft, model.AircraftRequest, model.AircraftRequest] {
	return c.aircraft
}

// Bookings returns the reservation endpoints.
func (c *Client) Bookings() *Bookings { return c.bookings }

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/users/login", op: "users.login", in: req, out: &out}); err != nil {
		return model.LoginResponse{}, err
	}
	if strings.TrimSpace(out.Token) == "" {
		return model.LoginResponse{}, apperrors.Unauthorized("")
	}
	return out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/users/register", op: "users.register", in: req})
}

// Me resolves the identity behind the request's credential.
func (c *Client) Me(ctx context.Context) (domainauth.Identity, error) {
	var out domainauth.Identity
	if err := c.do(ctx, call{method: http.MethodGet, path: "/users/me", op: "users.me", out: &out}); err != nil {
		return domainauth.Identity{}, err
	}
	if out.ID.IsZero() && out.Email == "" {
		return domainauth.Identity{}, apperrors.Wrap(errors.New("empty identity body"), apperrors.ErrCodeUnauthorized, "")
	}
	return out, nil
}

// call describes one outbound request. op is a low-cardinality label for logs and metrics.
type call struct {
	method string
	path   string
	op     string
	in     any
	out    any
}

func (c *Client) do(ctx context.Context, cl call) error {
	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build api request")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(cl.op, 0, elapsed)
		c.logger.WarnContext(ctx, "api request failed", "op", cl.op, "method", cl.method, "path", cl.path, "error", err)
		return apperrors.MapAPIError(fmt.Errorf("%s %s: %w", cl.method, cl.path, err))
	}
	defer resp.Body.Close()

	c.observe(cl.op, resp.StatusCode, elapsed)
	c.logger.DebugContext(ctx, "api request", "op", cl.op, "method", cl.method, "path", cl.path,
		"status", resp.StatusCode, "duration_ms", elapsed.Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.MapAPIError(c.statusError(cl, resp))
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := decodeBody(resp.Body, cl.out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "decode %s response", cl.op)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	if cl.in != nil {
		buf, err := json.Marshal(cl.in)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", cl.op, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.creds.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// decodeBody tolerates empty 2xx bodies.
func decodeBody(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) statusError(cl call, resp *http.Response) *StatusError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &StatusError{
		Method:     cl.method,
		Path:       cl.path,
		StatusCode: resp.StatusCode,
		Message:    c.extractMessage(data),
	}
}

// extractMessage applies the configured JMESPath expression to a JSON error body.
// Non-JSON bodies and non-string results yield an empty message.
func (c *Client) extractMessage(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	result, err := jmespath.Search(c.messagePath, doc)
	if err != nil {
		return ""
	}
	msg, _ := result.(string)
	return strings.TrimSpace(msg)
}

func (c *Client) observe(op string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveAPICall(op, status, elapsed)
	}
}

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// HTTPStatus implements apperrors.StatusError.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// ServerMessage implements apperrors.StatusError.
func (e *StatusError) ServerMessage() string { return e.Message }

// ContextCredentials reads the bearer token stored on the request context by the session layer.
type ContextCredentials struct{}

// Token implements ports.CredentialProvider.
func (ContextCredentials) Token(ctx context.Context) (string, bool) {
	return domainauth.TokenFromContext(ctx)
}
