package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/config"
	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/metrics"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/service/auth"
	"github.com/google/uuid"
)

const (
	bearerPrefix    = "Bearer "
	RequestIDHeader = "X-Request-ID"
)

const requestIDContextKey = ContextKey("request_id")

// RequestID generates unique request ID / Génère un ID unique pour la requête
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		r = r.WithContext(ctx)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r)
	})
}

// GetRequestID extracts request ID from context / Extrait l'ID de la requête du contexte
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDContextKey).(string); ok {
		return requestID
	}
	return ""
}

// Logging logs HTTP requests and prevents token leaks / Enregistre les requêtes et prévient les fuites
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.Contains(r.URL.RawQuery, "access_token=") ||
			strings.Contains(r.URL.RawQuery, bearerPrefix) {
			slog.Error("token leak detected in query string", "url", r.URL.Path, "ip", r.RemoteAddr)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)

		requestID := GetRequestID(r.Context())
		slog.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// MetricsMiddleware tracks HTTP request metrics / Suit les métriques des requêtes HTTP
func (m *Middleware) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.metrics.IncrementActiveConnections()
		defer m.metrics.DecrementActiveConnections()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		m.metrics.RecordHTTPRequest(r.Method, r.URL.Path, rw.statusCode)
		m.metrics.RecordHTTPDuration(r.Method, r.URL.Path, duration)
	})
}

// Timeout adds request timeout / Ajoute un timeout aux requêtes
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			r = r.WithContext(ctx)

			done := make(chan struct{})
			go func() {
				next.ServeHTTP(w, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					slog.Warn("request timeout", "path", r.URL.Path, "timeout", duration)
					http.Error(w, `{"error":"request timeout"}`, http.StatusGatewayTimeout)
				}
			}
		})
	}
}

// Middleware holds middleware configuration and dependencies / Contient la configuration middleware
type Middleware struct {
	conf          *config.Config
	globalLimiter *RateLimiter
	strictLimiter *RateLimiter
	userLimiter   *RateLimiter
	metrics       *metrics.Metrics
	userRepo      ports.UserReader
}

// responseWriter wraps ResponseWriter to capture status / Encapsule ResponseWriter pour capturer le statut
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures status code / Capture le code de statut
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// NewMiddleware creates middleware with rate limiters / Crée le middleware avec limiteurs
func NewMiddleware(conf *config.Config, metrics *metrics.Metrics, userRepo ports.UserReader) *Middleware {
	mw := &Middleware{
		conf:     conf,
		metrics:  metrics,
		userRepo: userRepo,
	}

	if conf.RateLimiter.Enabled {
		ctx := context.Background()

		mw.globalLimiter = NewRateLimiter(
			ctx,
			conf.RateLimiter.RPS,
			conf.RateLimiter.Burst,
		)

		strictRPS := conf.RateLimiter.RPS
		strictBurst := conf.RateLimiter.Burst

		if conf.IsProduction() {
			strictRPS = strictRPS / 2
			if strictBurst > 2 {
				strictBurst = strictBurst / 2
			}
		}
		mw.strictLimiter = NewRateLimiter(ctx, strictRPS, strictBurst)

		userRPS := conf.RateLimiter.RPS * 2
		userBurst := conf.RateLimiter.Burst * 2
		mw.userLimiter = NewRateLimiter(ctx, userRPS, userBurst)
	}

	return mw
}

// extractToken looks for the token in the Authorization header first, then in
// the session cookie / Cherche le token dans l'en-tête Authorization d'abord,
// puis dans le cookie de session
func extractToken(r *http.Request) (token string, fromCookie bool) {
	authorization := r.Header.Get("Authorization")
	if strings.HasPrefix(authorization, bearerPrefix) {
		return strings.TrimPrefix(authorization, bearerPrefix), false
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value, true
	}
	return "", false
}

// Auth validates the access token and loads the account. Role and suspension
// are re-read from storage on every request so a revocation takes effect
// before the token expires / Rôle et suspension sont relus à chaque requête
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, fromCookie := extractToken(r)
		if tokenStr == "" {
			deniedResponse(w, http.StatusUnauthorized, "authentication required", domain.LoginPath)
			return
		}

		claims, err := auth.ValidateJWT(tokenStr, m.conf.Auth.JWTSecret)
		if err != nil {
			m.metrics.RecordInvalidToken()
			deniedResponse(w, http.StatusUnauthorized, "invalid token", domain.LoginPath)
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), claims.Subject)
		if err != nil {
			m.metrics.RecordInvalidToken()
			deniedResponse(w, http.StatusUnauthorized, "invalid token", domain.LoginPath)
			return
		}

		if user.IsSuspended() {
			deniedResponse(w, http.StatusUnauthorized, "account suspended", domain.LoginPath)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		ctx = context.WithValue(ctx, UserContextKey, user)
		ctx = context.WithValue(ctx, cookieAuthContextKey, fromCookie)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireGuard enforces a role guard. Denials answer with the guard's
// redirect path so clients know where to send the user / Les refus renvoient
// le chemin de redirection du garde
func (m *Middleware) RequireGuard(guard domain.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok {
				m.metrics.RecordGuardDenial(guard.Name)
				deniedResponse(w, http.StatusUnauthorized, "authentication required", domain.LoginPath)
				return
			}

			decision := guard.Check(user)
			if !decision.Allowed {
				m.metrics.RecordGuardDenial(guard.Name)
				slog.Warn("guard denied",
					"guard", guard.Name,
					"user_id", user.ID,
					"role", user.Role,
					"path", r.URL.Path,
				)
				deniedResponse(w, http.StatusForbidden, "insufficient role", decision.RedirectTo)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRF protects cookie-authenticated mutations with the double submit
// pattern. Bearer requests carry the token themselves and are exempt /
// Protège les mutations authentifiées par cookie, les requêtes Bearer sont
// exemptées
func (m *Middleware) CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCookie, _ := r.Context().Value(cookieAuthContextKey).(bool)
		if !fromCookie {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie("csrf_token")
		if err != nil {
			slog.Warn("missing csrf_token cookie", "err", err)
			ErrorResponse(w, "Forbidden", http.StatusForbidden)
			return
		}
		cookieToken := cookie.Value
		headerToken := r.Header.Get("X-CSRF-Token")

		if !csrfTokensMatch(cookieToken, headerToken) {
			m.metrics.RecordCSRFFailure()
			slog.Warn("CSRF token mismatch", "cookie_len", len(cookieToken), "header_len", len(headerToken))
			ErrorResponse(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cors handles CORS headers / Gère les en-têtes CORS
func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range m.conf.Cors.AllowedOrigins {
			if allowed == "*" || allowed == origin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders adds security headers / Ajoute les en-têtes de sécurité
func (m *Middleware) SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cspValue := "default-src 'self'; frame-ancestors 'none'; object-src 'none'"
		if m.conf.IsProd() {
			cspValue += "; script-src 'self' cdn.jsdelivr.net; style-src 'self' cdn.jsdelivr.net"
		} else {
			cspValue += "; script-src 'self' 'unsafe-inline' cdn.jsdelivr.net; style-src 'self' 'unsafe-inline' cdn.jsdelivr.net"
		}
		// Article images come from external hosts, listing cards too / Les
		// images d'articles et d'annonces viennent d'hôtes externes
		cspValue += "; img-src 'self' https: data:; font-src 'self'; connect-src 'self'"
		w.Header().Set("Content-Security-Policy", cspValue)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")

		if m.conf.IsProd() {
			w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		}

		next.ServeHTTP(w, r)
	})
}
