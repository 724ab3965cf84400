package dto

import (
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// PropertyRequest is the payload for listing creation and edition / Charge utile de création et d'édition d'annonce
type PropertyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	City        string `json:"city"`
	Price       int64  `json:"price"`
	Surface     int    `json:"surface"`
	Rooms       int    `json:"rooms"`
	ImageURL    string `json:"image_url"`
}

// PropertyResponse is the public shape of a listing / Forme publique d'une annonce
type PropertyResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	City        string    `json:"city"`
	Price       int64     `json:"price"`
	Surface     int       `json:"surface,omitempty"`
	Rooms       int       `json:"rooms,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PropertyToDTO converts domain.Property / Convertit domain.Property
func PropertyToDTO(p *domain.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		City:        p.City,
		Price:       p.Price,
		Surface:     p.Surface,
		Rooms:       p.Rooms,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		OwnerID:     p.OwnerID,
		OwnerName:   p.OwnerName,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PropertiesToDTO converts a listing slice / Convertit une liste d'annonces
func PropertiesToDTO(properties []*domain.Property) []*PropertyResponse {
	out := make([]*PropertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, PropertyToDTO(p))
	}
	return out
}

// PropertyListResponse is a paginated listing page / Page paginée d'annonces
type PropertyListResponse struct {
	Properties []*PropertyResponse `json:"properties"`
	Total      int                 `json:"total"`
	Pages      int                 `json:"pages"`
}

// PropertyStatusRequest drives the listing lifecycle from the back-office /
// Pilote le cycle de vie d'une annonce depuis le back-office
type PropertyStatusRequest struct {
	Status string `json:"status"`
}
