package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/apprendrelanguage02-max/Matrix/internal/content"
	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository"
	"github.com/google/uuid"
)

// ErrPropertyNotFound signals a missing listing / Signale une annonce absente
var ErrPropertyNotFound = errors.New("property not found")

// PropertyService handles real-estate listing operations / Gère les opérations d'annonces immobilières
type PropertyService struct {
	properties ports.PropertyRepository
}

// NewPropertyService creates property service instance / Crée une instance de service annonce
func NewPropertyService(properties ports.PropertyRepository) *PropertyService {
	return &PropertyService{properties: properties}
}

func validatePropertyRequest(req dto.PropertyRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("title is required")
	}
	if !domain.PropertyType(req.Type).IsValid() {
		return errors.New("invalid transaction type")
	}
	if !domain.IsValidCity(req.City) {
		return errors.New("invalid city")
	}
	if req.Price <= 0 {
		return errors.New("price must be positive")
	}
	if req.Surface < 0 || req.Rooms < 0 {
		return errors.New("surface and rooms cannot be negative")
	}
	return nil
}

// Create publishes a new listing for the given agent. New listings always
// start disponible / Les nouvelles annonces démarrent toujours disponibles
func (s *PropertyService) Create(ctx context.Context, owner *domain.User, req dto.PropertyRequest) (*domain.Property, error) {
	if err := validatePropertyRequest(req); err != nil {
		return nil, err
	}

	property := &domain.Property{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: content.Sanitize(req.Description),
		Type:        domain.PropertyType(req.Type),
		City:        req.City,
		Price:       req.Price,
		Surface:     req.Surface,
		Rooms:       req.Rooms,
		ImageURL:    req.ImageURL,
		Status:      domain.PropertyDisponible,
		OwnerID:     owner.ID,
		OwnerName:   owner.Username,
	}

	if err := s.properties.Create(ctx, property); err != nil {
		slog.Error("failed to create property", "owner_id", owner.ID, "err", err)
		return nil, errors.New("failed to create property")
	}
	return property, nil
}

// Get retrieves a single listing / Récupère une seule annonce
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, ErrPropertyNotFound
		}
		slog.Error("failed to get property", "property_id", id, "err", err)
		return nil, errors.New("failed to retrieve property")
	}
	return property, nil
}

// List retrieves a page of listings matching the query / Récupère une page d'annonces
func (s *PropertyService) List(ctx context.Context, q listquery.PropertyQuery, limit int) ([]*domain.Property, int, int, error) {
	properties, total, err := s.properties.List(ctx, q, limit)
	if err != nil {
		slog.Error("failed to list properties", "err", err, "city", q.City, "type", q.Type)
		return nil, 0, 0, errors.New("failed to retrieve properties")
	}
	return properties, total, computePages(total, limit), nil
}

// ListByOwner retrieves the signed-in agent's listings / Récupère les annonces de l'agent connecté
func (s *PropertyService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error) {
	properties, err := s.properties.ListByOwner(ctx, ownerID)
	if err != nil {
		slog.Error("failed to list owner properties", "owner_id", ownerID, "err", err)
		return nil, errors.New("failed to retrieve properties")
	}
	return properties, nil
}

// Update rewrites a listing if the caller owns it or is admin / Réécrit une
// annonce si l'appelant en est propriétaire ou admin
func (s *PropertyService) Update(ctx context.Context, editor *domain.User, id string, req dto.PropertyRequest) (*domain.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !property.CanBeEditedBy(editor) {
		return nil, ErrNotOwner
	}
	if err := validatePropertyRequest(req); err != nil {
		return nil, err
	}

	property.Title = strings.TrimSpace(req.Title)
	property.Description = content.Sanitize(req.Description)
	property.Type = domain.PropertyType(req.Type)
	property.City = req.City
	property.Price = req.Price
	property.Surface = req.Surface
	property.Rooms = req.Rooms
	property.ImageURL = req.ImageURL

	if err := s.properties.Update(ctx, property); err != nil {
		slog.Error("failed to update property", "property_id", id, "err", err)
		return nil, errors.New("failed to update property")
	}
	return property, nil
}

// UpdateStatus moves a listing through disponible, reserve, vendu / Fait
// évoluer une annonce entre disponible, reserve et vendu
func (s *PropertyService) UpdateStatus(ctx context.Context, editor *domain.User, id string, status domain.PropertyStatus) (*domain.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !property.CanBeEditedBy(editor) {
		return nil, ErrNotOwner
	}
	if !status.IsValid() {
		return nil, errors.New("invalid status")
	}

	if err := s.properties.UpdateStatus(ctx, id, status); err != nil {
		slog.Error("failed to update property status", "property_id", id, "status", status, "err", err)
		return nil, errors.New("failed to update property status")
	}
	property.Status = status
	return property, nil
}

// Delete removes a listing if the caller owns it or is admin / Supprime une
// annonce si l'appelant en est propriétaire ou admin
func (s *PropertyService) Delete(ctx context.Context, editor *domain.User, id string) error {
	property, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !property.CanBeEditedBy(editor) {
		return ErrNotOwner
	}

	if err := s.properties.Delete(ctx, id); err != nil {
		slog.Error("failed to delete property", "property_id", id, "err", err)
		return errors.New("failed to delete property")
	}
	return nil
}
