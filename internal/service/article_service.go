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

// Article service errors
var (
	ErrArticleNotFound = errors.New("article not found")
	ErrNotOwner        = errors.New("not allowed to modify this resource")
)

// ArticleService handles newsroom operations / Gère les opérations de la rédaction
type ArticleService struct {
	articles ports.ArticleRepository
}

// NewArticleService creates article service instance / Crée une instance de service article
func NewArticleService(articles ports.ArticleRepository) *ArticleService {
	return &ArticleService{articles: articles}
}

func validateArticleRequest(req dto.ArticleRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return errors.New("content is required")
	}
	if !domain.IsValidCategory(req.Category) {
		return errors.New("invalid category")
	}
	return nil
}

// Create publishes a new article under the given author. Rich HTML bodies are
// sanitized once here, then rendered verbatim / Les corps HTML sont assainis
// ici, puis rendus tels quels
func (s *ArticleService) Create(ctx context.Context, author *domain.User, req dto.ArticleRequest) (*domain.Article, error) {
	if err := validateArticleRequest(req); err != nil {
		return nil, err
	}

	article := &domain.Article{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(req.Title),
		Content:    content.Sanitize(req.Content),
		Category:   req.Category,
		ImageURL:   req.ImageURL,
		AuthorID:   author.ID,
		AuthorName: author.Username,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		slog.Error("failed to create article", "author_id", author.ID, "err", err)
		return nil, errors.New("failed to create article")
	}

	return article, nil
}

// Get retrieves a single article / Récupère un seul article
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, ErrArticleNotFound
		}
		slog.Error("failed to get article", "article_id", id, "err", err)
		return nil, errors.New("failed to retrieve article")
	}
	return article, nil
}

// List retrieves a page of articles matching the query / Récupère une page d'articles
func (s *ArticleService) List(ctx context.Context, q listquery.ArticleQuery, limit int) ([]*domain.Article, int, int, error) {
	articles, total, err := s.articles.List(ctx, q, limit)
	if err != nil {
		slog.Error("failed to list articles", "err", err, "category", q.Category, "search", q.Search)
		return nil, 0, 0, errors.New("failed to retrieve articles")
	}
	return articles, total, computePages(total, limit), nil
}

// ListByAuthor retrieves the signed-in author's articles / Récupère les articles de l'auteur connecté
func (s *ArticleService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Article, error) {
	articles, err := s.articles.ListByAuthor(ctx, authorID)
	if err != nil {
		slog.Error("failed to list author articles", "author_id", authorID, "err", err)
		return nil, errors.New("failed to retrieve articles")
	}
	return articles, nil
}

// Update rewrites an article if the caller owns it or is admin / Réécrit un
// article si l'appelant en est propriétaire ou admin
func (s *ArticleService) Update(ctx context.Context, editor *domain.User, id string, req dto.ArticleRequest) (*domain.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.CanBeEditedBy(editor) {
		return nil, ErrNotOwner
	}
	if err := validateArticleRequest(req); err != nil {
		return nil, err
	}

	article.Title = strings.TrimSpace(req.Title)
	article.Content = content.Sanitize(req.Content)
	article.Category = req.Category
	article.ImageURL = req.ImageURL

	if err := s.articles.Update(ctx, article); err != nil {
		slog.Error("failed to update article", "article_id", id, "err", err)
		return nil, errors.New("failed to update article")
	}
	return article, nil
}

// Delete removes an article if the caller owns it or is admin / Supprime un
// article si l'appelant en est propriétaire ou admin
func (s *ArticleService) Delete(ctx context.Context, editor *domain.User, id string) error {
	article, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !article.CanBeEditedBy(editor) {
		return ErrNotOwner
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		slog.Error("failed to delete article", "article_id", id, "err", err)
		return errors.New("failed to delete article")
	}
	return nil
}
