package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestResponseCacheNilClientPassesThrough(t *testing.T) {
	cache := NewResponseCache(nil, 30*time.Second, metrics.NewMetrics(prometheus.NewRegistry()))

	called := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusOK)
	}))

	for range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"), "without Redis the middleware stays invisible")
	}
	assert.Equal(t, 2, called)
}

func TestCacheKeyCanonicalizesQueries(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "/api/articles?category=Sport&page=2", nil)
	b := httptest.NewRequest(http.MethodGet, "/api/articles?page=2&category=Sport", nil)

	assert.Equal(t, cacheKey(a), cacheKey(b), "parameter order must not split the cache")

	c := httptest.NewRequest(http.MethodGet, "/api/articles?category=Sport&page=3", nil)
	assert.NotEqual(t, cacheKey(a), cacheKey(c))
}
