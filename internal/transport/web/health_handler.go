package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// HealthResponse is the payload of /health and /readiness / Charge utile de
// /health et /readiness
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

const readinessTimeout = 2 * time.Second

// HealthCheck answers liveness probes. It never touches a dependency: "ok"
// only means the process is up / Répond aux sondes de vivacité sans toucher
// aux dépendances
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(startTime).Truncate(time.Second).String(),
	})
}

// ReadinessCheck answers readiness probes: the database always, the Redis
// listing cache and the view event broker only when they are wired. Any
// failing dependency turns the whole response into a 503 / Répond aux sondes
// de disponibilité : la base toujours, le cache et le broker s'ils sont câblés
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{
		"database": checkStatus(h.checkDatabase(ctx)),
	}
	if h.container.Cache != nil {
		checks["cache"] = checkStatus(h.container.Cache.Ping(ctx).Err())
	}
	if h.container.Publisher != nil {
		checks["queue"] = checkStatus(h.container.Publisher.Ping())
	}

	status, httpStatus := "ok", http.StatusOK
	for _, state := range checks {
		if state != "ok" {
			status, httpStatus = "error", http.StatusServiceUnavailable
			break
		}
	}

	writeHealth(w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

func (h *Handler) checkDatabase(ctx context.Context) error {
	if h.container.DB == nil {
		return errors.New("no database configured")
	}
	return h.container.DB.PingContext(ctx)
}

func checkStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func writeHealth(w http.ResponseWriter, status int, resp HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
