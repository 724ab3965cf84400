package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
)

var _ ports.PropertyRepository = (*propertyRepository)(nil)

// propertyRepository implements PropertyRepository for PostgreSQL / Implémente PropertyRepository pour PostgreSQL
type propertyRepository struct {
	db ports.DBTX
}

// NewPropertyRepository creates property repository / Crée le repository annonces
func NewPropertyRepository(db *sql.DB) ports.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, title, description, type, city, price, surface, rooms, image_url, status, owner_id, owner_name, views, created_at, updated_at`

func scanProperty(row interface{ Scan(...any) error }) (*domain.Property, error) {
	p := &domain.Property{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.City,
		&p.Price,
		&p.Surface,
		&p.Rooms,
		&p.ImageURL,
		&p.Status,
		&p.OwnerID,
		&p.OwnerName,
		&p.Views,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new listing / Insère une nouvelle annonce
func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now

	query := `INSERT INTO properties (` + propertyColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.ExecContext(ctx, query,
		property.ID, property.Title, property.Description,
		property.Type, property.City, property.Price,
		property.Surface, property.Rooms, property.ImageURL,
		property.Status, property.OwnerID, property.OwnerName,
		property.Views, property.CreatedAt, property.UpdatedAt,
	)
	return handleError(err)
}

// GetByID retrieves a listing by ID / Récupère une annonce par ID
func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	property, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, handleError(err)
	}
	return property, nil
}

// List retrieves a page of listings matching the query / Récupère une page d'annonces
func (r *propertyRepository) List(ctx context.Context, q listquery.PropertyQuery, limit int) ([]*domain.Property, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if q.Type != "" {
		args = append(args, q.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if q.City != "" {
		args = append(args, q.City)
		where = append(where, fmt.Sprintf("city = $%d", len(args)))
	}
	if q.Status != "" && !q.FilterAll() {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.PriceMin > 0 {
		args = append(args, q.PriceMin)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if q.PriceMax > 0 {
		args = append(args, q.PriceMax)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM properties WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, handleError(err)
	}

	order := "created_at DESC"
	switch q.Sort {
	case listquery.SortPriceAsc:
		order = "price ASC"
	case listquery.SortPriceDesc:
		order = "price DESC"
	}

	offset := (q.Page - 1) * limit
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+propertyColumns+` FROM properties WHERE `+cond+`
	          ORDER BY `+order+` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, handleError(err)
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, 0, handleError(err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, handleError(err)
	}

	return properties, totalCount, nil
}

// ListByOwner retrieves an agent's listings / Récupère les annonces d'un agent
func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryProperties(ctx, query, ownerID)
}

// ListAll retrieves every listing for exports / Récupère toutes les annonces pour les exports
func (r *propertyRepository) ListAll(ctx context.Context) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`
	return r.queryProperties(ctx, query)
}

func (r *propertyRepository) queryProperties(ctx context.Context, query string, args ...any) ([]*domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, handleError(err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}
	return properties, nil
}

// CountProperties returns total listing count / Retourne le nombre total d'annonces
func (r *propertyRepository) CountProperties(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count)
	if err != nil {
		return 0, handleError(err)
	}
	return count, nil
}

// Update rewrites the editable fields / Réécrit les champs modifiables
func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := `UPDATE properties
	          SET title = $1, description = $2, type = $3, city = $4, price = $5,
	              surface = $6, rooms = $7, image_url = $8, updated_at = $9
	          WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		property.Title, property.Description, property.Type,
		property.City, property.Price, property.Surface,
		property.Rooms, property.ImageURL, time.Now().UTC(), property.ID,
	)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// UpdateStatus moves a listing through its lifecycle / Fait évoluer le statut d'une annonce
func (r *propertyRepository) UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error {
	query := `UPDATE properties SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// Delete removes a listing by ID / Supprime une annonce par ID
func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// IncrementViews adds one view / Ajoute une vue
func (r *propertyRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE properties SET views = views + 1 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}
