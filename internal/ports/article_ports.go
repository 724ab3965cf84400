package ports

import (
	"context"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
)

// ArticleReader reads published articles / Lit les articles publiés
type ArticleReader interface {
	// GetByID retrieves an article by ID / Récupère un article par ID
	GetByID(ctx context.Context, id string) (*domain.Article, error)

	// List retrieves a page of articles matching the query, newest first,
	// with the total match count / Récupère une page d'articles avec le
	// nombre total de correspondances
	List(ctx context.Context, q listquery.ArticleQuery, limit int) ([]*domain.Article, int, error)

	// ListByAuthor retrieves an author's articles, newest first / Récupère les articles d'un auteur
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Article, error)

	// ListAll retrieves every article, for back-office exports / Récupère tous les articles, pour les exports
	ListAll(ctx context.Context) ([]*domain.Article, error)

	// CountArticles returns total article count / Retourne le nombre total d'articles
	CountArticles(ctx context.Context) (int, error)
}

// ArticleWriter mutates articles / Modifie les articles
type ArticleWriter interface {
	// Create inserts a new article / Insère un nouvel article
	Create(ctx context.Context, article *domain.Article) error

	// Update rewrites title, content, category and image / Réécrit titre, contenu, catégorie et image
	Update(ctx context.Context, article *domain.Article) error

	// Delete removes an article by ID / Supprime un article par ID
	Delete(ctx context.Context, id string) error

	// IncrementViews adds one view / Ajoute une vue
	IncrementViews(ctx context.Context, id string) error
}

// ArticleRepository is the composite interface for article operations / Interface composite pour les opérations articles
type ArticleRepository interface {
	ArticleReader
	ArticleWriter
}
