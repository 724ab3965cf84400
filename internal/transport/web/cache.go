package web

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/metrics"
	"github.com/redis/go-redis/v9"
)

// ResponseCache keeps rendered listing pages in Redis for a short TTL. The two
// public listings take almost all of the read traffic and tolerate slightly
// stale results / Garde les pages de liste rendues dans Redis pour un court
// TTL, les deux listes publiques concentrent la quasi-totalité du trafic
type ResponseCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewResponseCache creates a cache. client may be nil, the middleware then
// passes everything through / Crée un cache, client peut être nil et tout
// passe alors au travers
func NewResponseCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl, metrics: m}
}

// cacheKey canonicalizes the query so equivalent URLs share an entry /
// Canonise la requête pour que les URL équivalentes partagent une entrée
func cacheKey(r *http.Request) string {
	values, _ := url.ParseQuery(r.URL.RawQuery)
	return "http:" + r.URL.Path + "?" + values.Encode()
}

// bufferedWriter captures a response so it can be stored / Capture une réponse pour la stocker
type bufferedWriter struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.statusCode = code
	bw.ResponseWriter.WriteHeader(code)
}

func (bw *bufferedWriter) Write(p []byte) (int, error) {
	bw.body = append(bw.body, p...)
	return bw.ResponseWriter.Write(p)
}

// Middleware serves GET responses from Redis when possible. Only 200 bodies
// are stored / Sert les réponses GET depuis Redis si possible, seuls les
// corps 200 sont stockés
func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.client == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r)

		ctx, cancel := context.WithTimeout(r.Context(), 200*time.Millisecond)
		cached, err := c.client.Get(ctx, key).Bytes()
		cancel()
		if err == nil {
			c.metrics.RecordCacheLookup(true)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(cached)
			return
		}

		c.metrics.RecordCacheLookup(false)
		w.Header().Set("X-Cache", "MISS")

		bw := &bufferedWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(bw, r)

		if bw.statusCode == http.StatusOK && len(bw.body) > 0 {
			// Best effort, a failed store just means a miss next time / Au
			// mieux, un échec d'écriture signifie un raté la prochaine fois
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			c.client.Set(ctx, key, bw.body, c.ttl)
			cancel()
		}
	})
}
