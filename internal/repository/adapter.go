package repository

import (
	"database/sql"
	"strings"

	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository/postgres"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository/sqlite"
)

// Compile-time checks to ensure all Factory implementations satisfy DatabaseFactory interface
// If a Factory doesn't implement all methods, the code won't compile
// Vérifications à la compilation pour s'assurer que toutes les implémentations de Factory satisfont l'interface DatabaseFactory
// Si une Factory n'implémente pas toutes les méthodes, le code ne compilera pas
var (
	_ DatabaseFactory = (*sqlite.Factory)(nil)
	_ DatabaseFactory = (*postgres.Factory)(nil)
)

// factoryRegistry holds all database factories / Registre de toutes les factories de BD
// No switch statements - just a map lookup / Pas de switch - juste une recherche dans la map
var factoryRegistry = map[string]DatabaseFactory{
	"sqlite":     &sqlite.Factory{},
	"sqlite3":    &sqlite.Factory{},
	"postgres":   &postgres.Factory{},
	"postgresql": &postgres.Factory{},
}

// Adapter adapts database connection to repositories / Adapte la connexion BD vers les repositories
type Adapter struct {
	db      *sql.DB
	factory DatabaseFactory
}

// NewAdapter creates repository adapter / Crée l'adapteur de repositories
func NewAdapter(db *sql.DB, driver string) *Adapter {
	// Lookup factory from registry (no switch needed)
	// Recherche la factory dans le registre (pas de switch nécessaire)
	factory := factoryRegistry[strings.ToLower(driver)]
	if factory == nil {
		factory = &sqlite.Factory{} // default fallback
	}

	return &Adapter{
		db:      db,
		factory: factory,
	}
}

// UserRepository returns appropriate user repository / Retourne le repository utilisateur approprié
func (a *Adapter) UserRepository() ports.UserRepository {
	return a.factory.NewUserRepository(a.db)
}

// ArticleRepository returns appropriate article repository / Retourne le repository articles approprié
func (a *Adapter) ArticleRepository() ports.ArticleRepository {
	return a.factory.NewArticleRepository(a.db)
}

// PropertyRepository returns appropriate property repository / Retourne le repository annonces approprié
func (a *Adapter) PropertyRepository() ports.PropertyRepository {
	return a.factory.NewPropertyRepository(a.db)
}

// PaymentRepository returns appropriate payment repository / Retourne le repository paiements approprié
func (a *Adapter) PaymentRepository() ports.PaymentRepository {
	return a.factory.NewPaymentRepository(a.db)
}
