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

var _ ports.ArticleRepository = (*articleRepository)(nil)

// articleRepository implements ArticleRepository for PostgreSQL / Implémente ArticleRepository pour PostgreSQL
type articleRepository struct {
	db ports.DBTX
}

// NewArticleRepository creates article repository / Crée le repository articles
func NewArticleRepository(db *sql.DB) ports.ArticleRepository {
	return &articleRepository{db: db}
}

const articleColumns = `id, title, content, category, image_url, author_id, author_name, views, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (*domain.Article, error) {
	a := &domain.Article{}
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Category,
		&a.ImageURL,
		&a.AuthorID,
		&a.AuthorName,
		&a.Views,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new article / Insère un nouvel article
func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	query := `INSERT INTO articles (` + articleColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content, article.Category,
		article.ImageURL, article.AuthorID, article.AuthorName,
		article.Views, article.CreatedAt, article.UpdatedAt,
	)
	return handleError(err)
}

// GetByID retrieves an article by ID / Récupère un article par ID
func (r *articleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, handleError(err)
	}
	return article, nil
}

// List retrieves a page of articles matching the query, newest first /
// Récupère une page d'articles correspondant à la requête
func (r *articleRepository) List(ctx context.Context, q listquery.ArticleQuery, limit int) ([]*domain.Article, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args)-1, len(args)))
	}
	if q.Category != "" {
		args = append(args, q.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM articles WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, handleError(err)
	}

	offset := (q.Page - 1) * limit
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+articleColumns+` FROM articles WHERE `+cond+`
	          ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, handleError(err)
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, handleError(err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, handleError(err)
	}

	return articles, totalCount, nil
}

// ListByAuthor retrieves an author's articles / Récupère les articles d'un auteur
func (r *articleRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE author_id = $1 ORDER BY created_at DESC`
	return r.queryArticles(ctx, query, authorID)
}

// ListAll retrieves every article for exports / Récupère tous les articles pour les exports
func (r *articleRepository) ListAll(ctx context.Context) ([]*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`
	return r.queryArticles(ctx, query)
}

func (r *articleRepository) queryArticles(ctx context.Context, query string, args ...any) ([]*domain.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, handleError(err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}
	return articles, nil
}

// CountArticles returns total article count / Retourne le nombre total d'articles
func (r *articleRepository) CountArticles(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, handleError(err)
	}
	return count, nil
}

// Update rewrites the editable fields / Réécrit les champs modifiables
func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	query := `UPDATE articles
	          SET title = $1, content = $2, category = $3, image_url = $4, updated_at = $5
	          WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		article.Title, article.Content, article.Category,
		article.ImageURL, time.Now().UTC(), article.ID,
	)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// Delete removes an article by ID / Supprime un article par ID
func (r *articleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// IncrementViews adds one view / Ajoute une vue
func (r *articleRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE articles SET views = views + 1 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}
