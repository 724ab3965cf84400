package ports

import (
	"context"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
)

// PropertyReader reads real-estate listings / Lit les annonces immobilières
type PropertyReader interface {
	// GetByID retrieves a listing by ID / Récupère une annonce par ID
	GetByID(ctx context.Context, id string) (*domain.Property, error)

	// List retrieves a page of listings matching the query, with the total
	// match count / Récupère une page d'annonces avec le nombre total de
	// correspondances
	List(ctx context.Context, q listquery.PropertyQuery, limit int) ([]*domain.Property, int, error)

	// ListByOwner retrieves an agent's listings, newest first / Récupère les annonces d'un agent
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error)

	// ListAll retrieves every listing, for back-office exports / Récupère toutes les annonces, pour les exports
	ListAll(ctx context.Context) ([]*domain.Property, error)

	// CountProperties returns total listing count / Retourne le nombre total d'annonces
	CountProperties(ctx context.Context) (int, error)
}

// PropertyWriter mutates listings / Modifie les annonces
type PropertyWriter interface {
	// Create inserts a new listing / Insère une nouvelle annonce
	Create(ctx context.Context, property *domain.Property) error

	// Update rewrites the editable fields / Réécrit les champs modifiables
	Update(ctx context.Context, property *domain.Property) error

	// UpdateStatus moves a listing through its lifecycle / Fait évoluer le statut d'une annonce
	UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error

	// Delete removes a listing by ID / Supprime une annonce par ID
	Delete(ctx context.Context, id string) error

	// IncrementViews adds one view / Ajoute une vue
	IncrementViews(ctx context.Context, id string) error
}

// PropertyRepository is the composite interface for listing operations / Interface composite pour les opérations annonces
type PropertyRepository interface {
	PropertyReader
	PropertyWriter
}
