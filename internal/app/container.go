package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/apprendrelanguage02-max/Matrix/internal/config"
	"github.com/apprendrelanguage02-max/Matrix/internal/metrics"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/queue"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository/db"
	"github.com/apprendrelanguage02-max/Matrix/internal/service"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file-based migrations
	_ "github.com/lib/pq"                                // PostgreSQL driver
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite" // SQLite driver
)

// Container holds application dependencies / Contient les dépendances de l'application
type Container struct {
	DB           *sql.DB
	UserRepo     ports.UserRepository
	ArticleRepo  ports.ArticleRepository
	PropertyRepo ports.PropertyRepository
	PaymentRepo  ports.PaymentRepository
	UserSvc      *service.UserService
	AuthSvc      *service.AuthService
	ArticleSvc   *service.ArticleService
	PropertySvc  *service.PropertyService
	PaymentSvc   *service.PaymentService
	AdminSvc     *service.AdminService
	ViewTracker  *service.ViewTracker
	Cache        *redis.Client
	Publisher    queue.Publisher
	Config       *config.Config
	Metrics      *metrics.Metrics
	ctxCancel    context.CancelFunc
}

// NewContainer initializes application container / Initialise le conteneur de l'application
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{}
	c.Config = cfg

	// Initialize metrics first (no dependencies)
	c.Metrics = metrics.NewMetrics(nil)

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	if err := c.runMigrations(); err != nil {
		c.Close() // Ensure database connection is closed on migration failure
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	c.initRepositories()

	if err := c.initCache(); err != nil {
		c.Close()
		return nil, fmt.Errorf("cache init: %w", err)
	}

	if err := c.initQueue(); err != nil {
		c.Close()
		return nil, fmt.Errorf("queue init: %w", err)
	}

	c.initServices()

	// Update database connection metrics
	c.updateDatabaseMetrics()

	return c, nil
}

// initDatabase initializes database connection / Initialise la connexion à la base de données
func (c *Container) initDatabase() error {
	// Parse database type
	dbType := db.DatabaseType(strings.ToLower(c.Config.Database.Type))
	if dbType == "" {
		dbType = db.SQLite
	}

	// Create database configuration
	dbConfig := db.DatabaseConfig{
		Type:         dbType,
		DSN:          c.Config.Database.DSN,
		MaxOpenConns: c.Config.Database.MaxOpenConns,
		MaxIdleConns: c.Config.Database.MaxIdleConns,
	}

	// Use Factory Pattern to create appropriate initializer
	initializer := db.NewDatabaseInitializer(dbType)

	// Initialize database connection
	database, err := initializer.Initialize(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", dbType, err)
	}

	c.DB = database
	return nil
}

// runMigrations applies database migrations / Applique les migrations de base de données
func (c *Container) runMigrations() error {
	// Parse database type
	dbType := db.DatabaseType(strings.ToLower(c.Config.Database.Type))
	if dbType == "" {
		dbType = db.SQLite
	}

	// Create migration driver registry (Dependency Injection)
	registry := db.NewMigrationDriverRegistry()

	// Get the appropriate migration driver factory (NO SWITCH!)
	driverFactory, err := registry.GetFactory(dbType)
	if err != nil {
		return err
	}

	// Create the migration driver using the factory
	driver, err := driverFactory.CreateDriver(c.DB)
	if err != nil {
		return fmt.Errorf("could not create %s migration driver: %w", dbType, err)
	}

	// Create migrate instance
	m, err := migrate.NewWithDatabaseInstance(
		"file://"+c.Config.Database.MigrationsPath,
		driverFactory.DriverName(),
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	log.Printf("Applying %s database migrations...", dbType)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Database migrations applied successfully.")
	return nil
}

// initRepositories initializes repositories / Initialise les repositories
func (c *Container) initRepositories() {
	// Use Adapter Pattern for clean database abstraction
	adapter := repository.NewAdapter(c.DB, c.Config.Database.Type)

	c.UserRepo = adapter.UserRepository()
	c.ArticleRepo = adapter.ArticleRepository()
	c.PropertyRepo = adapter.PropertyRepository()
	c.PaymentRepo = adapter.PaymentRepository()

	log.Printf("Repositories initialized for %s database", c.Config.Database.Type)
}

// initCache connects the Redis listing cache when enabled / Connecte le cache Redis des listes si activé
func (c *Container) initCache() error {
	if !c.Config.Cache.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.Config.Cache.Addr,
		Password: c.Config.Cache.Password,
		DB:       c.Config.Cache.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	c.Cache = client
	log.Printf("Listing cache connected (addr: %s, ttl: %s)", c.Config.Cache.Addr, c.Config.Cache.TTL)
	return nil
}

// initQueue connects the view event broker when enabled / Connecte le broker d'événements de vue si activé
func (c *Container) initQueue() error {
	if !c.Config.Queue.Enabled {
		return nil
	}

	publisher, err := queue.NewPublisher(c.Config.Queue.URL, c.Config.Queue.Queue)
	if err != nil {
		return err
	}

	c.Publisher = publisher
	log.Printf("View event queue connected (queue: %s)", c.Config.Queue.Queue)
	return nil
}

// initServices initializes application services / Initialise les services applicatifs
func (c *Container) initServices() {
	c.UserSvc = service.NewUserService(c.UserRepo, c.Config)
	c.AuthSvc = service.NewAuthService(c.UserRepo, c.Config, c.Metrics)
	c.ArticleSvc = service.NewArticleService(c.ArticleRepo)
	c.PropertySvc = service.NewPropertyService(c.PropertyRepo)
	c.PaymentSvc = service.NewPaymentService(c.PaymentRepo, c.PropertyRepo, c.Metrics)
	c.AdminSvc = service.NewAdminService(c.UserRepo, c.ArticleRepo, c.PropertyRepo, c.PaymentRepo)
	c.ViewTracker = service.NewViewTracker(c.ArticleRepo, c.PropertyRepo, c.Publisher, c.Metrics)

	// With a broker configured, drain view events in the background / Avec un
	// broker configuré, draine les événements de vue en arrière-plan
	if c.Config.Queue.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		c.ctxCancel = cancel

		consumer := queue.NewConsumer(c.Config.Queue.URL, c.Config.Queue.Queue, c.ViewTracker.Apply)
		go consumer.Run(ctx)
	}
}

// updateDatabaseMetrics updates database metrics / Met à jour les métriques de la BD
func (c *Container) updateDatabaseMetrics() {
	stats := c.DB.Stats()
	c.Metrics.UpdateDatabaseConnections(stats.OpenConnections)
}

// Close performs graceful shutdown / Effectue un arrêt gracieux
func (c *Container) Close() error {
	if c.ctxCancel != nil {
		c.ctxCancel()
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			log.Printf("queue close: %v", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Printf("cache close: %v", err)
		}
	}
	if c.DB != nil {
		log.Println("Closing database...")
		return c.DB.Close()
	}
	return nil
}
