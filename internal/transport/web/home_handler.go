package web

import (
	"net/http"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// Home serves the public platform index: the fixed vocabularies clients need
// to build their filter menus / Sert l'index public de la plateforme : les
// vocabulaires fixes dont les clients ont besoin pour leurs menus de filtres
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]any{
		"name":       "matrix",
		"categories": domain.Categories(),
		"cities":     domain.Cities(),
		"property_types": []string{
			string(domain.PropertyVente),
			string(domain.PropertyAchat),
			string(domain.PropertyLocation),
		},
		"payment_methods": []string{
			string(domain.MethodOrangeMoney),
			string(domain.MethodMobileMoney),
			string(domain.MethodPaycard),
			string(domain.MethodCarteBancaire),
		},
	})
}

// Categories serves the fixed newsroom categories / Sert les catégories fixes de la rédaction
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]any{"categories": domain.Categories()})
}

// CitiesHandler serves the covered cities / Sert les villes couvertes
func (h *Handler) CitiesHandler(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]any{"cities": domain.Cities()})
}
