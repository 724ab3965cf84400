package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metric collectors / Contient tous les collecteurs de métriques Prometheus
type Metrics struct {
	// Authentication metrics
	LoginAttempts     *prometheus.CounterVec // Total login attempts by status (success/failure)
	RegistrationTotal prometheus.Counter     // Total registrations

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec   // Total HTTP requests by method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // HTTP request latency in seconds
	ActiveConnections   prometheus.Gauge         // Current number of active HTTP connections

	// Security metrics
	RateLimitHits *prometheus.CounterVec // Rate limit violations by endpoint
	CSRFFailures  prometheus.Counter     // CSRF validation failures
	InvalidTokens prometheus.Counter     // Invalid/expired JWT token attempts
	GuardDenials  *prometheus.CounterVec // Access denials by guard name

	// Content metrics
	ViewsTracked    *prometheus.CounterVec // Content views by kind (article/property)
	PaymentsCreated *prometheus.CounterVec // Payment intents by method
	CacheLookups    *prometheus.CounterVec // Listing cache lookups by result (hit/miss)
	QueuePublishes  *prometheus.CounterVec // View event publishes by result (ok/error)

	// System metrics
	DatabaseConnections prometheus.Gauge // Current database connection pool size
}

// NewMetrics initializes Metrics instance / Initialise une instance Metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_attempts_total",
				Help: "Total number of login attempts by status (success, failure)",
			},
			[]string{"status"},
		),

		RegistrationTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_registrations_total",
				Help: "Total number of user registrations",
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status code",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				// Buckets optimized for API response times: 10ms to 10s
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Current number of active HTTP connections",
			},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "security_rate_limit_hits_total",
				Help: "Total number of rate limit violations by endpoint",
			},
			[]string{"endpoint"},
		),

		CSRFFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "security_csrf_failures_total",
				Help: "Total number of CSRF validation failures",
			},
		),

		InvalidTokens: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "security_invalid_tokens_total",
				Help: "Total number of invalid or expired JWT token attempts",
			},
		),

		GuardDenials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "security_guard_denials_total",
				Help: "Total number of access denials by guard name",
			},
			[]string{"guard"},
		),

		ViewsTracked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_views_tracked_total",
				Help: "Total number of content views by kind",
			},
			[]string{"kind"},
		),

		PaymentsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Total number of payment intents by method",
			},
			[]string{"method"},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Total number of listing cache lookups by result",
			},
			[]string{"result"},
		),

		QueuePublishes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "queue_publishes_total",
				Help: "Total number of view event publishes by result",
			},
			[]string{"result"},
		),

		DatabaseConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "database_connections_active",
				Help: "Current number of active database connections",
			},
		),
	}

	return m
}

// RecordLoginSuccess records a successful login.
func (m *Metrics) RecordLoginSuccess() {
	m.LoginAttempts.WithLabelValues("success").Inc()
}

// RecordLoginFailure records a failed login.
func (m *Metrics) RecordLoginFailure() {
	m.LoginAttempts.WithLabelValues("failure").Inc()
}

// RecordRegistration increments the registration counter.
func (m *Metrics) RecordRegistration() {
	m.RegistrationTotal.Inc()
}

// RecordHTTPRequest records an HTTP request with method, path, and status code.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(statusCode)).Inc()
}

// RecordHTTPDuration records the duration of an HTTP request.
func (m *Metrics) RecordHTTPDuration(method, path string, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementActiveConnections increments the active connections gauge.
func (m *Metrics) IncrementActiveConnections() {
	m.ActiveConnections.Inc()
}

// DecrementActiveConnections decrements the active connections gauge.
func (m *Metrics) DecrementActiveConnections() {
	m.ActiveConnections.Dec()
}

// RecordRateLimitHit records a rate limit violation for a specific endpoint.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordCSRFFailure increments the CSRF failure counter.
func (m *Metrics) RecordCSRFFailure() {
	m.CSRFFailures.Inc()
}

// RecordInvalidToken increments the invalid token counter.
func (m *Metrics) RecordInvalidToken() {
	m.InvalidTokens.Inc()
}

// RecordGuardDenial increments the denial counter for a guard / Incrémente le compteur de refus d'un garde
func (m *Metrics) RecordGuardDenial(guard string) {
	m.GuardDenials.WithLabelValues(guard).Inc()
}

// RecordViewTracked counts one content view / Compte une vue de contenu
func (m *Metrics) RecordViewTracked(kind string) {
	m.ViewsTracked.WithLabelValues(kind).Inc()
}

// RecordPaymentCreated counts one payment intent / Compte une intention de paiement
func (m *Metrics) RecordPaymentCreated(method string) {
	m.PaymentsCreated.WithLabelValues(method).Inc()
}

// RecordCacheLookup counts one listing cache lookup / Compte une consultation du cache des listes
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordQueuePublish counts one view event publish / Compte une publication d'événement de vue
func (m *Metrics) RecordQueuePublish(ok bool) {
	result := "error"
	if ok {
		result = "ok"
	}
	m.QueuePublishes.WithLabelValues(result).Inc()
}

// UpdateDatabaseConnections updates the database connections gauge.
func (m *Metrics) UpdateDatabaseConnections(count int) {
	m.DatabaseConnections.Set(float64(count))
}

// statusCodeToString converts HTTP status code to string / Convertit le code de statut HTTP en chaîne
func statusCodeToString(code int) string {
	// Common status codes as exact strings
	switch code {
	case 200:
		return "200"
	case 201:
		return "201"
	case 400:
		return "400"
	case 401:
		return "401"
	case 403:
		return "403"
	case 404:
		return "404"
	case 429:
		return "429"
	case 500:
		return "500"
	case 503:
		return "503"
	default:
		// Group others by range
		if code >= 200 && code < 300 {
			return "2xx"
		} else if code >= 300 && code < 400 {
			return "3xx"
		} else if code >= 400 && code < 500 {
			return "4xx"
		} else if code >= 500 && code < 600 {
			return "5xx"
		}
		return "unknown"
	}
}
