package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	assert.NotNil(t, m)
	// Check a few metrics to make sure they are initialized
	assert.NotNil(t, m.LoginAttempts)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.GuardDenials)
	assert.NotNil(t, m.DatabaseConnections)
}

func TestRecordLoginAttempts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordLoginSuccess()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")))
	m.RecordLoginFailure()
	m.RecordLoginFailure()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")))
}

func TestRecordRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordRegistration()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordHTTPRequest("GET", "/test", 200)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/test", "200")))
}

func TestRecordHTTPDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordHTTPDuration("GET", "/test", 1*time.Second)

	expected := `
# HELP http_request_duration_seconds HTTP request latency in seconds
# TYPE http_request_duration_seconds histogram
http_request_duration_seconds_bucket{method="GET",path="/test",le="0.01"} 0
http_request_duration_seconds_bucket{method="GET",path="/test",le="0.05"} 0
http_request_duration_seconds_bucket{method="GET",path="/test",le="0.1"} 0
http_request_duration_seconds_bucket{method="GET",path="/test",le="0.25"} 0
http_request_duration_seconds_bucket{method="GET",path="/test",le="0.5"} 0
http_request_duration_seconds_bucket{method="GET",path="/test",le="1"} 1
http_request_duration_seconds_bucket{method="GET",path="/test",le="2.5"} 1
http_request_duration_seconds_bucket{method="GET",path="/test",le="5"} 1
http_request_duration_seconds_bucket{method="GET",path="/test",le="10"} 1
http_request_duration_seconds_bucket{method="GET",path="/test",le="+Inf"} 1
http_request_duration_seconds_sum{method="GET",path="/test"} 1
http_request_duration_seconds_count{method="GET",path="/test"} 1
`
	err := testutil.CollectAndCompare(m.HTTPRequestDuration, strings.NewReader(expected), "http_request_duration_seconds")
	assert.NoError(t, err)
}

func TestIncrementDecrementActiveConnections(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.IncrementActiveConnections()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveConnections))
	m.DecrementActiveConnections()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveConnections))
}

func TestRecordRateLimitHit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordRateLimitHit("/login")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitHits.WithLabelValues("/login")))
}

func TestRecordCSRFFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordCSRFFailure()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CSRFFailures))
}

func TestRecordInvalidToken(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordInvalidToken()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidTokens))
}

func TestRecordGuardDenial(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordGuardDenial("admin")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GuardDenials.WithLabelValues("admin")))
	m.RecordGuardDenial("agent")
	m.RecordGuardDenial("agent")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GuardDenials.WithLabelValues("agent")))
}

func TestRecordViewTracked(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordViewTracked("article.viewed")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewsTracked.WithLabelValues("article.viewed")))
}

func TestRecordPaymentCreated(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordPaymentCreated("orange_money")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsCreated.WithLabelValues("orange_money")))
}

func TestRecordCacheLookup(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordCacheLookup(true)
	m.RecordCacheLookup(false)
	m.RecordCacheLookup(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestRecordQueuePublish(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordQueuePublish(true)
	m.RecordQueuePublish(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueuePublishes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueuePublishes.WithLabelValues("error")))
}

func TestUpdateDatabaseConnections(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.UpdateDatabaseConnections(10)
	assert.Equal(t, 10.0, testutil.ToFloat64(m.DatabaseConnections))
}
