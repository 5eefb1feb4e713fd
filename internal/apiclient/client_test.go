package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	requests []recordedRequest
	handler  func(w http.ResponseWriter, r *http.Request)
}

func newFakeAPI(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{t: t, handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		require.NoError(f.t, json.Unmarshal(data, &rec.Body))
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()
	f.handler(w, r)
}

func (f *fakeAPI) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.requests)
	return f.requests[len(f.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	opts.BaseURL = srv.URL + "/api/"
	opts.HTTPClient = srv.Client()
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

type staticCreds string

func (s staticCreds) Token(context.Context) (string, bool) { return string(s), s != "" }

type observation struct {
	op     string
	status int
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recordingObserver) ObserveAPICall(op string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{op: op, status: status})
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "  "})
	require.Error(t, err)
}

func TestNew_RejectsInvalidMessagePath(t *testing.T) {
	_, err := New(Options{BaseURL: "http://api", ErrorMessagePath: "message ||"})
	require.Error(t, err)
}

func TestClient_AttachesBearerTokenFromContext(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"_id":7,"name":"Sari","email":"sari@example.com","role":"admin"}`)
	})
	c := newTestClient(t, srv, Options{})

	ctx := domainauth.ContextWithToken(context.Background(), "tok-123")
	me, err := c.Me(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", api.last().Auth)
	assert.Equal(t, "/api/users/me", api.last().Path)
	assert.Equal(t, ident.ID("7"), me.ID)
	assert.True(t, me.IsAdmin())
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	c := newTestClient(t, srv, Options{})

	items, err := c.Services().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Empty(t, api.last().Auth)
}

func TestClient_ExplicitCredentialsProvider(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	c := newTestClient(t, srv, Options{Credentials: staticCreds("fixed")})

	_, err := c.Bookings().Mine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer fixed", api.last().Auth)
	assert.Equal(t, "/api/bookings/me", api.last().Path)
}

func TestClient_Login(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"token":"jwt-abc"}`)
	})
	c := newTestClient(t, srv, Options{})

	resp, err := c.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", resp.Token)

	req := api.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/users/login", req.Path)
	assert.Equal(t, "a@b.c", req.Body["email"])
	assert.Equal(t, "secret", req.Body["password"])
}

func TestClient_LoginWithoutTokenIsUnauthorized(t *testing.T) {
	_, srv := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})
	c := newTestClient(t, srv, Options{})

	_, err := c.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		path    string
		wantMsg string
		check   func(error) bool
	}{
		{
			name:    "message key",
			status:  http.StatusUnauthorized,
			body:    `{"message":"Email atau password salah"}`,
			wantMsg: "Email atau password salah",
			check:   apperrors.IsUnauthorized,
		},
		{
			name:    "falls back to error key",
			status:  http.StatusBadRequest,
			body:    `{"error":"Email sudah terdaftar"}`,
			wantMsg: "Email sudah terdaftar",
			check:   apperrors.IsValidation,
		},
		{
			name:    "custom path",
			status:  http.StatusConflict,
			body:    `{"errors":[{"detail":"Duplikat"}]}`,
			path:    "errors[0].detail",
			wantMsg: "Duplikat",
			check:   apperrors.IsConflict,
		},
		{
			name:   "non json body",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check:  apperrors.IsUnavailable,
		},
		{
			name:   "forbidden without body",
			status: http.StatusForbidden,
			check:  apperrors.IsForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			c := newTestClient(t, srv, Options{ErrorMessagePath: tt.path})

			err := c.Register(context.Background(), model.RegisterRequest{Name: "n", Email: "e", Password: "p"})
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected code %q", apperrors.GetCode(err))
			assert.Equal(t, tt.wantMsg, apperrors.UserMessage(err, ""))

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.HTTPStatus())
		})
	}
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	c, err := New(Options{BaseURL: base, Observer: obs})
	require.NoError(t, err)

	_, err = c.Services().List(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
	require.Len(t, obs.obs, 1)
	assert.Equal(t, observation{op: "services.list", status: 0}, obs.obs[0])
}

func TestClient_CanceledContext(t *testing.T) {
	_, srv := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	c := newTestClient(t, srv, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Users().List(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
}

func TestResource_CRUDPaths(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			writeJSON(w, http.StatusOK, `{"message":"Layanan dihapus"}`)
			return
		}
		writeJSON(w, http.StatusCreated, `{}`)
	})
	obs := &recordingObserver{}
	c := newTestClient(t, srv, Options{Observer: obs})
	ctx := context.Background()

	flight := time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC)
	require.NoError(t, c.Services().Create(ctx, model.CreateServiceRequest{
		Name: "Bali", Description: "Garuda", Price: model.NewMoney(1500000), FlightDate: flight,
	}))
	created := api.last()
	assert.Equal(t, http.MethodPost, created.Method)
	assert.Equal(t, "/api/services", created.Path)
	assert.Equal(t, "Bali", created.Body["name"])
	assert.InDelta(t, 1500000, created.Body["price"], 0.001)
	assert.Equal(t, "2025-03-01T03:00:00Z", created.Body["flightDate"])

	name := "Lombok"
	require.NoError(t, c.Services().Update(ctx, "12", model.UpdateServiceRequest{Name: &name}))
	updated := api.last()
	assert.Equal(t, http.MethodPatch, updated.Method)
	assert.Equal(t, "/api/services/12", updated.Path)
	assert.Equal(t, map[string]any{"name": "Lombok"}, updated.Body)

	msg, err := c.Services().Delete(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "Layanan dihapus", msg)
	assert.Equal(t, http.MethodDelete, api.last().Method)

	require.NoError(t, c.Aircraft().Create(ctx, model.AircraftRequest{Name: "A320", Type: "Narrow"}))
	assert.Equal(t, "/api/aircrafts", api.last().Path)

	require.NoError(t, c.Destinations().Update(ctx, "3", model.DestinationRequest{Name: "Bali"}))
	assert.Equal(t, "/api/destinations/3", api.last().Path)

	ops := make([]string, 0, len(obs.obs))
	for _, o := range obs.obs {
		ops = append(ops, o.op)
	}
	assert.Equal(t, []string{"services.create", "services.update", "services.delete", "aircrafts.create", "destinations.update"}, ops)
}

func TestBookings_Endpoints(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, `[{"_id":"b1","status":"pending","date":"2025-03-01T00:00:00Z","service":{"_id":1,"name":"Bali","price":100}}]`)
		case r.Method == http.MethodDelete:
			writeJSON(w, http.StatusOK, `{}`)
		default:
			writeJSON(w, http.StatusOK, `{}`)
		}
	})
	c := newTestClient(t, srv, Options{})
	ctx := context.Background()

	list, err := c.Bookings().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ident.ID("b1"), list[0].ID)
	assert.Equal(t, "/api/bookings", api.last().Path)

	require.NoError(t, c.Bookings().UpdateStatus(ctx, "b1", model.BookingConfirmed))
	assert.Equal(t, "/api/bookings/b1/status", api.last().Path)
	assert.Equal(t, http.MethodPatch, api.last().Method)
	assert.Equal(t, "confirmed", api.last().Body["status"])

	msg, err := c.Bookings().Delete(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, msg)

	require.NoError(t, c.Bookings().Create(ctx, model.CreateBookingRequest{
		ServiceID:      "1",
		Date:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PassengerName:  "Budi",
		PassengerEmail: "budi@example.com",
		PassengerPhone: "0812",
	}))
	body := api.last().Body
	assert.Equal(t, "/api/bookings", api.last().Path)
	assert.InDelta(t, 1, body["serviceId"], 0.001)
	assert.Equal(t, "Budi", body["passengerName"])
	assert.NotContains(t, body, "returnDate")
}

func TestResource_Get(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/services/404" {
			writeJSON(w, http.StatusNotFound, `{"message":"Layanan tidak ditemukan"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"_id":5,"name":"Bali","price":1500000,"flightDate":"2025-03-01T03:00:00Z"}`)
	})
	c := newTestClient(t, srv, Options{})

	svc, err := c.Services().Get(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "/api/services/5", api.last().Path)
	assert.Equal(t, ident.ID("5"), svc.ID)
	assert.Equal(t, "Bali", svc.Name)
	require.NotNil(t, svc.FlightDate)

	_, err = c.Services().Get(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Layanan tidak ditemukan", apperrors.UserMessage(err, ""))
}
