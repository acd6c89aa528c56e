package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values shared by the counters below.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// MetricsManager holds the service's Prometheus collectors on a private registry.
type MetricsManager struct {
	Registry *prometheus.Registry

	RegistrationsTotal *prometheus.CounterVec
	LoginsTotal        *prometheus.CounterVec
	ConfirmationsTotal *prometheus.CounterVec
	EmailsSentTotal    *prometheus.CounterVec
	HTTPLatency        *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers the collectors.
func NewMetricsManager(serviceName string) *MetricsManager {
	namespace := sanitize(serviceName)
	registry := prometheus.NewRegistry()

	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by account kind.",
	}, []string{"kind"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by account kind and outcome.",
	}, []string{"kind", "outcome"})
	confirmations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_total",
		Help:      "Total number of email confirmation attempts, by outcome.",
	}, []string{"outcome"})
	emails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of confirmation emails attempted, by outcome.",
	}, []string{"outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests by route pattern, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	registry.MustRegister(
		registrations,
		logins,
		confirmations,
		emails,
		latency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:           registry,
		RegistrationsTotal: registrations,
		LoginsTotal:        logins,
		ConfirmationsTotal: confirmations,
		EmailsSentTotal:    emails,
		HTTPLatency:        latency,
	}
}

func (m *MetricsManager) RegistrationSucceeded(kind string) {
	m.RegistrationsTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsManager) LoginAttempted(kind string, ok bool) {
	m.LoginsTotal.WithLabelValues(kind, outcome(ok)).Inc()
}

func (m *MetricsManager) ConfirmationAttempted(ok bool) {
	m.ConfirmationsTotal.WithLabelValues(outcome(ok)).Inc()
}

func (m *MetricsManager) EmailAttempted(ok bool) {
	m.EmailsSentTotal.WithLabelValues(outcome(ok)).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *MetricsManager) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.HTTPLatency.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// sanitize turns "tutoring-service" into a valid metric namespace.
func sanitize(name string) string {
	out := []byte(name)
	for i, c := range out {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum {
			out[i] = '_'
		}
	}
	return string(out)
}
