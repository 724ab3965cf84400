package repository

import (
	"database/sql"

	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository/sqlite"
)

// NewSQLiteUser creates a SQLite user repository for tests / Crée un repository utilisateur SQLite pour les tests
func NewSQLiteUser(database *sql.DB) ports.UserRepository {
	return sqlite.NewUserRepository(database)
}

// NewSQLiteArticle creates a SQLite article repository for tests / Crée un repository d'articles SQLite pour les tests
func NewSQLiteArticle(database *sql.DB) ports.ArticleRepository {
	return sqlite.NewArticleRepository(database)
}

// NewSQLiteProperty creates a SQLite property repository for tests / Crée un repository de biens SQLite pour les tests
func NewSQLiteProperty(database *sql.DB) ports.PropertyRepository {
	return sqlite.NewPropertyRepository(database)
}

// NewSQLitePayment creates a SQLite payment repository for tests / Crée un repository de paiements SQLite pour les tests
func NewSQLitePayment(database *sql.DB) ports.PaymentRepository {
	return sqlite.NewPaymentRepository(database)
}
