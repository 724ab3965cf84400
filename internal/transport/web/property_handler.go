package web

import (
	"errors"
	"net/http"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
	"github.com/apprendrelanguage02-max/Matrix/internal/service"
)

// ListProperties serves the public marketplace listing / Sert la liste publique des annonces
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	q := listquery.ParsePropertyQuery(r.URL.Query())

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

// GetProperty serves one listing / Sert une annonce
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.container.PropertySvc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			ErrorResponse(w, "property not found", http.StatusNotFound)
			return
		}
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, dto.PropertyToDTO(property))
}

// TrackPropertyView counts one view, fired by the client after display /
// Compte une vue, déclenché par le client après affichage
func (h *Handler) TrackPropertyView(w http.ResponseWriter, r *http.Request) {
	h.container.ViewTracker.TrackPropertyView(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// ListMyProperties serves the signed-in agent's listings / Sert les annonces de l'agent connecté
func (h *Handler) ListMyProperties(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	properties, err := h.container.PropertySvc.ListByOwner(r.Context(), user.ID)
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, dto.PropertiesToDTO(properties))
}

// CreateProperty publishes a new listing / Publie une nouvelle annonce
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.PropertyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	property, err := h.container.PropertySvc.Create(r.Context(), user, req)
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdResponse(w, dto.PropertyToDTO(property))
}

// UpdateProperty edits a listing, owner or admin only / Édite une annonce, propriétaire ou admin
func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.PropertyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	property, err := h.container.PropertySvc.Update(r.Context(), user, r.PathValue("id"), req)
	if err != nil {
		h.propertyError(w, err)
		return
	}

	jsonResponse(w, dto.PropertyToDTO(property))
}

// UpdatePropertyStatus moves a listing through its lifecycle / Fait évoluer le statut d'une annonce
func (h *Handler) UpdatePropertyStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.PropertyStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	property, err := h.container.PropertySvc.UpdateStatus(r.Context(), user, r.PathValue("id"), domain.PropertyStatus(req.Status))
	if err != nil {
		h.propertyError(w, err)
		return
	}

	jsonResponse(w, dto.PropertyToDTO(property))
}

// DeleteProperty removes a listing, owner or admin only / Supprime une annonce, propriétaire ou admin
func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.container.PropertySvc.Delete(r.Context(), user, r.PathValue("id")); err != nil {
		h.propertyError(w, err)
		return
	}

	jsonResponse(w, map[string]string{"message": "Property deleted successfully"})
}

func (h *Handler) propertyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPropertyNotFound):
		ErrorResponse(w, "property not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNotOwner):
		ErrorResponse(w, "not allowed to modify this property", http.StatusForbidden)
	default:
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
	}
}
