package web

import (
	"errors"
	"net/http"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
	"github.com/apprendrelanguage02-max/Matrix/internal/service"
)

// GetStats serves the back-office dashboard counters / Sert les compteurs du tableau de bord
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.container.AdminSvc.Stats(r.Context())
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, stats)
}

// ListUsers returns paginated list of users / Retourne la liste paginée des utilisateurs
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	role := r.URL.Query().Get("role")

	users, total, pages, err := h.container.UserSvc.ListUsers(r.Context(), search, role, pageNumber(r), pageSize(r))
	if err != nil {
		ErrorResponse(w, "Failed to retrieve users", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, dto.UserListResponse{
		Users: dto.UsersToDTO(users),
		Total: total,
		Pages: pages,
	})
}

// UpdateUserStatus suspends or reactivates an account / Suspend ou réactive un compte
func (h *Handler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	admin, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.container.UserSvc.UpdateUserStatus(r.Context(), admin.ID, r.PathValue("id"), domain.UserStatus(req.Status))
	if err != nil {
		h.adminUserError(w, err)
		return
	}

	jsonResponse(w, map[string]string{"message": "User status updated successfully"})
}

// UpdateUserRole updates user role / Met à jour le rôle d'un utilisateur
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	admin, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.container.UserSvc.UpdateUserRole(r.Context(), admin.ID, r.PathValue("id"), domain.UserRole(req.Role))
	if err != nil {
		h.adminUserError(w, err)
		return
	}

	jsonResponse(w, map[string]string{"message": "User role updated successfully"})
}

// DeleteUser deletes a user by ID / Supprime un utilisateur par ID
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.container.UserSvc.DeleteUser(r.Context(), admin.ID, r.PathValue("id")); err != nil {
		h.adminUserError(w, err)
		return
	}

	jsonResponse(w, map[string]string{"message": "User deleted successfully"})
}

// ListAllArticles serves the article table for the back-office, same query
// vocabulary as the public listing / Sert la table des articles pour le
// back-office, même vocabulaire de requête que la liste publique
func (h *Handler) ListAllArticles(w http.ResponseWriter, r *http.Request) {
	q := listquery.ParseArticleQuery(r.URL.Query())

	articles, total, pages, err := h.container.ArticleSvc.List(r.Context(), q, pageSize(r))
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]*dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, dto.ArticleToDTO(a))
	}
	jsonResponse(w, dto.ArticleListResponse{Articles: out, Total: total, Pages: pages})
}

// ListAllProperties serves the listing table for the back-office. Unlike the
// public marketplace the availability filter is off unless asked for / Sert la
// table des annonces pour le back-office, filtre de disponibilité désactivé
// sauf demande explicite
func (h *Handler) ListAllProperties(w http.ResponseWriter, r *http.Request) {
	q := listquery.ParsePropertyQuery(r.URL.Query())
	if r.URL.Query().Get("status") == "" {
		q.Status = listquery.StatusAll
	}

	properties, total, pages, err := h.container.PropertySvc.List(r.Context(), q, pageSize(r))
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, dto.PropertyListResponse{
		Properties: dto.PropertiesToDTO(properties),
		Total:      total,
		Pages:      pages,
	})
}

// ListPayments serves paginated payments with back-office filters / Sert les paiements paginés avec filtres
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	method := r.URL.Query().Get("method")

	payments, total, pages, err := h.container.PaymentSvc.List(r.Context(), status, method, pageNumber(r), pageSize(r))
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(w, dto.PaymentListResponse{
		Payments: dto.PaymentsToDTO(payments),
		Total:    total,
		Pages:    pages,
	})
}

// UpdatePaymentStatus confirms or fails a payment intent / Confirme ou rejette une intention de paiement
func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.container.PaymentSvc.UpdateStatus(r.Context(), r.PathValue("id"), domain.PaymentStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			ErrorResponse(w, "payment not found", http.StatusNotFound)
			return
		}
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(w, map[string]string{"message": "Payment status updated successfully"})
}

// exportCSV wraps the CSV exports with the download headers / Enveloppe les exports CSV avec les en-têtes de téléchargement
func exportCSV(w http.ResponseWriter, filename string, write func(http.ResponseWriter) error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := write(w); err != nil {
		// Headers are already out, the truncated file is the best we can do /
		// Les en-têtes sont partis, le fichier tronqué est le mieux possible
		return
	}
}

// ExportUsers downloads the user table as CSV / Télécharge la table des utilisateurs en CSV
func (h *Handler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	exportCSV(w, "users.csv", func(w http.ResponseWriter) error {
		return h.container.AdminSvc.ExportUsers(r.Context(), w)
	})
}

// ExportArticles downloads the article table as CSV / Télécharge la table des articles en CSV
func (h *Handler) ExportArticles(w http.ResponseWriter, r *http.Request) {
	exportCSV(w, "articles.csv", func(w http.ResponseWriter) error {
		return h.container.AdminSvc.ExportArticles(r.Context(), w)
	})
}

// ExportProperties downloads the listing table as CSV / Télécharge la table des annonces en CSV
func (h *Handler) ExportProperties(w http.ResponseWriter, r *http.Request) {
	exportCSV(w, "properties.csv", func(w http.ResponseWriter) error {
		return h.container.AdminSvc.ExportProperties(r.Context(), w)
	})
}

// ExportPayments downloads the payment table as CSV / Télécharge la table des paiements en CSV
func (h *Handler) ExportPayments(w http.ResponseWriter, r *http.Request) {
	exportCSV(w, "payments.csv", func(w http.ResponseWriter) error {
		return h.container.AdminSvc.ExportPayments(r.Context(), w)
	})
}

func (h *Handler) adminUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		ErrorResponse(w, "user not found", http.StatusNotFound)
	case errors.Is(err, service.ErrSelfModification):
		ErrorResponse(w, "cannot modify own account", http.StatusForbidden)
	default:
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
	}
}
