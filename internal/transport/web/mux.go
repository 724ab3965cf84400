package web

import (
	"net/http"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/app"
	"github.com/apprendrelanguage02-max/Matrix/internal/config"
	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux creates and configures the HTTP router / Crée et configure le routeur HTTP
func NewMux(h *Handler, conf *config.Config, container *app.Container) http.Handler {
	mux := http.NewServeMux()
	mw := NewMiddleware(conf, container.Metrics, container.UserRepo)

	requireAuth := mw.RequireGuard(domain.GuardAuthenticated)
	requireAgent := mw.RequireGuard(domain.GuardAgent)
	requireAuthor := mw.RequireGuard(domain.GuardAuthor)
	requireAdmin := mw.RequireGuard(domain.GuardAdmin)

	// Health check endpoints (no auth, no rate limiting for load balancers)
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /readiness", h.ReadinessCheck)

	// Prometheus metrics endpoint (protected - requires admin authentication)
	// If Prometheus should scrape without auth, run metrics on a separate
	// internal port or whitelist at infrastructure level.
	mux.Handle("GET /metrics", chain(
		func(w http.ResponseWriter, r *http.Request) {
			promhttp.Handler().ServeHTTP(w, r)
		},
		mw.Auth,
		requireAdmin,
	))

	// Public endpoints / Points d'accès publics
	mux.HandleFunc("GET /{$}", h.Home)

	cache := NewResponseCache(container.Cache, conf.Cache.TTL, container.Metrics)
	mux.HandleFunc("GET /api/categories", h.Categories)
	mux.HandleFunc("GET /api/cities", h.CitiesHandler)
	mux.Handle("GET /api/articles", cache.Middleware(http.HandlerFunc(h.ListArticles)))
	mux.HandleFunc("GET /api/articles/{id}", h.GetArticle)
	mux.HandleFunc("POST /api/articles/{id}/view", h.TrackArticleView)
	mux.Handle("GET /api/properties", cache.Middleware(http.HandlerFunc(h.ListProperties)))
	mux.HandleFunc("GET /api/properties/{id}", h.GetProperty)
	mux.HandleFunc("POST /api/properties/{id}/view", h.TrackPropertyView)

	mux.Handle("POST /api/login", chain(h.Login, mw.RateLimitStrict))
	mux.Handle("POST /api/register", chain(h.Register, mw.RateLimitStrict))

	// Account endpoints, any signed-in role / Points d'accès compte, tout rôle connecté
	mux.Handle("GET /api/me", chain(h.Me, mw.Auth, requireAuth, mw.RateLimitByUser))
	mux.Handle("PUT /api/me", chain(h.UpdateProfile, mw.Auth, requireAuth, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("PUT /api/me/password", chain(h.ChangePassword, mw.Auth, requireAuth, mw.CSRF, mw.RateLimitStrict))
	mux.Handle("POST /api/logout", chain(h.Logout, mw.Auth, requireAuth, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("POST /api/payments", chain(h.CreatePayment, mw.Auth, requireAuth, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("GET /api/payments", chain(h.ListMyPayments, mw.Auth, requireAuth, mw.RateLimitByUser))
	mux.Handle("GET /api/payments/{id}", chain(h.GetPayment, mw.Auth, requireAuth, mw.RateLimitByUser))

	// Newsroom endpoints, auteur and up / Points d'accès rédaction, auteur et plus
	mux.Handle("GET /api/me/articles", chain(h.ListMyArticles, mw.Auth, requireAuthor, mw.RateLimitByUser))
	mux.Handle("POST /api/articles", chain(h.CreateArticle, mw.Auth, requireAuthor, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("PUT /api/articles/{id}", chain(h.UpdateArticle, mw.Auth, requireAuthor, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("DELETE /api/articles/{id}", chain(h.DeleteArticle, mw.Auth, requireAuthor, mw.CSRF, mw.RateLimitByUser))

	// Marketplace endpoints, agent and up / Points d'accès immobilier, agent et plus
	mux.Handle("GET /api/me/properties", chain(h.ListMyProperties, mw.Auth, requireAgent, mw.RateLimitByUser))
	mux.Handle("POST /api/properties", chain(h.CreateProperty, mw.Auth, requireAgent, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("PUT /api/properties/{id}", chain(h.UpdateProperty, mw.Auth, requireAgent, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("PATCH /api/properties/{id}/status", chain(h.UpdatePropertyStatus, mw.Auth, requireAgent, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("DELETE /api/properties/{id}", chain(h.DeleteProperty, mw.Auth, requireAgent, mw.CSRF, mw.RateLimitByUser))

	// Back-office endpoints, admin only / Points d'accès back-office, admin seulement
	mux.Handle("GET /api/admin/stats", chain(h.GetStats, mw.Auth, requireAdmin, mw.RateLimitByUser))
	mux.Handle("GET /api/admin/users", chain(h.ListUsers, mw.Auth, requireAdmin, mw.RateLimitByUser))
	mux.Handle("PATCH /api/admin/users/{id}/status", chain(h.UpdateUserStatus, mw.Auth, requireAdmin, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("PATCH /api/admin/users/{id}/role", chain(h.UpdateUserRole, mw.Auth, requireAdmin, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("DELETE /api/admin/users/{id}", chain(h.DeleteUser, mw.Auth, requireAdmin, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("GET /api/admin/articles", chain(h.ListAllArticles, mw.Auth, requireAdmin, mw.RateLimitByUser))
	mux.Handle("GET /api/admin/properties", chain(h.ListAllProperties, mw.Auth, requireAdmin, mw.RateLimitByUser))
	mux.Handle("GET /api/admin/payments", chain(h.ListPayments, mw.Auth, requireAdmin, mw.RateLimitByUser))
	mux.Handle("PATCH /api/admin/payments/{id}/status", chain(h.UpdatePaymentStatus, mw.Auth, requireAdmin, mw.CSRF, mw.RateLimitByUser))
	mux.Handle("GET /api/admin/export/users", chain(h.ExportUsers, mw.Auth, requireAdmin, mw.RateLimitByUser))
	mux.Handle("GET /api/admin/export/articles", chain(h.ExportArticles, mw.Auth, requireAdmin, mw.RateLimitByUser))
	mux.Handle("GET /api/admin/export/properties", chain(h.ExportProperties, mw.Auth, requireAdmin, mw.RateLimitByUser))
	mux.Handle("GET /api/admin/export/payments", chain(h.ExportPayments, mw.Auth, requireAdmin, mw.RateLimitByUser))

	// Global middlewares - applied in reverse order / Middlewares globaux appliqués en ordre inverse
	var handler http.Handler = mux
	handler = mw.MetricsMiddleware(handler) // Metrics first to capture everything
	handler = mw.RateLimit(handler)
	handler = mw.SecurityHeaders(handler)
	handler = mw.Cors(handler)
	handler = Timeout(30 * time.Second)(handler) // 30s timeout for all requests / Timeout de 30s pour toutes les requêtes
	handler = Logging(handler)                   // Logging includes request ID
	handler = RequestID(handler)                 // RequestID first - generates ID for all middleware

	return handler
}

// chain applies middleware to HTTP handler / Applique les middlewares au gestionnaire HTTP
func chain(f http.HandlerFunc, middlewares ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = f

	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
