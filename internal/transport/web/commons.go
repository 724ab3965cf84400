package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/apprendrelanguage02-max/Matrix/internal/app"
)

// defaultPageSize is the number of cards per listing page / Nombre de cartes par page de liste
const defaultPageSize = 10

// Handler is a container for application dependencies that are required by HTTP handlers.
// By embedding the application's dependency injection container, it provides handlers
// with access to services, repositories, and configuration.
type Handler struct {
	container *app.Container
}

// NewHandler creates and returns a new Handler instance.
func NewHandler(container *app.Container) *Handler {
	return &Handler{container: container}
}

// ErrorResponse is a helper function for sending standardized JSON error responses.
// It sets the "Content-Type" header to "application/json", writes the specified HTTP status code,
// and sends a JSON body with an "error" key containing the provided message.
func ErrorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": message,
	})
}

// deniedResponse answers an access denial with the path the client should
// navigate to / Répond à un refus d'accès avec le chemin à suivre côté client
func deniedResponse(w http.ResponseWriter, code int, message, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error":    message,
		"redirect": redirect,
	})
}

// jsonResponse is a helper function for sending standardized JSON responses.
func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// createdResponse sends a 201 with a JSON body / Envoie un 201 avec un corps JSON
func createdResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON reads a bounded JSON body into dst. Returns false after writing
// the error response when the body is invalid / Lit un corps JSON borné dans
// dst, renvoie false après avoir écrit la réponse d'erreur si le corps est
// invalide
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// pageSize reads the limit query parameter, bounded to keep a single page
// cheap / Lit le paramètre limit, borné pour garder une page peu coûteuse
func pageSize(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultPageSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultPageSize
	}
	if n > 50 {
		return 50
	}
	return n
}

// pageNumber reads the page query parameter / Lit le paramètre page
func pageNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
