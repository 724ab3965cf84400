package postgres

import (
	"database/sql"

	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
)

// Factory implements DatabaseFactory for PostgreSQL / Implémente DatabaseFactory pour PostgreSQL
// The compile-time check is in adapter.go to avoid import cycles
// La vérification à la compilation est dans adapter.go pour éviter les cycles d'imports
type Factory struct{}

// NewUserRepository creates user repository / Crée le repository utilisateur
func (f *Factory) NewUserRepository(db *sql.DB) ports.UserRepository {
	return NewUserRepository(db)
}

// NewArticleRepository creates article repository / Crée le repository articles
func (f *Factory) NewArticleRepository(db *sql.DB) ports.ArticleRepository {
	return NewArticleRepository(db)
}

// NewPropertyRepository creates property repository / Crée le repository annonces
func (f *Factory) NewPropertyRepository(db *sql.DB) ports.PropertyRepository {
	return NewPropertyRepository(db)
}

// NewPaymentRepository creates payment repository / Crée le repository paiements
func (f *Factory) NewPaymentRepository(db *sql.DB) ports.PaymentRepository {
	return NewPaymentRepository(db)
}
