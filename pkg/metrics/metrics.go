// Package metrics holds the service's Prometheus collectors. Everything is
// registered on Registry rather than the global default so tests can build
// routers repeatedly without duplicate-registration panics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "forum"

// Registry is the registry every collector in this package is attached to.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// AuthRejections counts requests turned away by the request gate.
	// stage is "authenticate" or "authorize"; reason is the internal cause.
	AuthRejections = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Requests rejected by the authentication or authorization stage.",
	}, []string{"stage", "reason"})

	// LoginAttempts counts password logins by outcome ("success", "failure").
	LoginAttempts = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Password login attempts by outcome.",
	}, []string{"outcome"})

	// TokensIssued counts tokens minted by the token authority.
	TokensIssued = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Identity tokens issued.",
	})

	// PasswordHashSeconds observes Argon2id derivation latency, including
	// time spent waiting for a hashing slot.
	PasswordHashSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_seconds",
		Help:      "Time spent hashing or verifying passwords.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"op"})

	httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "code"})

	httpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObserveHash records one password derivation that started at start.
func ObserveHash(op string, start time.Time) {
	PasswordHashSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// HTTPMiddleware records request counts and latency. The route label is the
// ServeMux pattern that matched, so path parameters do not explode label
// cardinality; unmatched requests are recorded as "unmatched".
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rw.status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
