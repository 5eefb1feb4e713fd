// Package metrics owns the Prometheus collectors of revo-ui: inbound HTTP
// requests, outbound calls to the booking API, session resolution outcomes,
// and the results of user-facing actions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obserrors "github.com/revobooking/revo-ui/internal/observability/errors"
)

const namespace = "revo_ui"

// Result constants for action metrics.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// Session resolution outcomes.
const (
	SessionAuthenticated = "authenticated"
	SessionAnonymous     = "anonymous"
	SessionUndetermined  = "undetermined"
)

// Registry holds every collector on a private prometheus.Registry.
// A nil *Registry is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	apiCalls        *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
	sessionResolves *prometheus.CounterVec
	actions         *prometheus.CounterVec
}

// New creates a Registry with Go runtime and process collectors attached.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_calls_total",
			Help:      "Outbound booking API calls by operation and status class (2xx, 4xx, 5xx, error).",
		}, []string{"op", "status_class"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_call_duration_seconds",
			Help:      "Outbound booking API latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		sessionResolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_resolutions_total",
			Help:      "Per-request session resolutions by outcome.",
		}, []string{"outcome"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "User-facing actions (login, checkout, admin mutations) by result and error class.",
		}, []string{"action", "result", "error_class"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.apiCalls,
		r.apiDuration,
		r.sessionResolves,
		r.actions,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry (tests).
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveHTTPRequest records one inbound request. route must be the mux pattern, not the raw path.
func (r *Registry) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAPICall records one outbound API call. status 0 means no response was received.
func (r *Registry) ObserveAPICall(op string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.apiCalls.WithLabelValues(op, statusClass(status)).Inc()
	r.apiDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveSession records a session resolution outcome.
func (r *Registry) ObserveSession(outcome string) {
	if r == nil {
		return
	}
	r.sessionResolves.WithLabelValues(outcome).Inc()
}

// ActionMetric captures the outcome of a user-facing action.
type ActionMetric struct {
	Action string
	Result string
	Err    error
}

// ObserveAction records an action outcome. The error class label is set only for errors.
func (r *Registry) ObserveAction(in ActionMetric) {
	if r == nil {
		return
	}
	result := in.Result
	if result == "" {
		result = ResultSuccess
		if in.Err != nil {
			result = ResultError
		}
	}
	class := ""
	if in.Err != nil && result != ResultSuccess {
		class = obserrors.Classify(in.Err)
	}
	r.actions.WithLabelValues(in.Action, result, class).Inc()
}

func statusClass(status int) string {
	switch {
	case status <= 0:
		return "error"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
