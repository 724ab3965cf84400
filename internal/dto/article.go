package dto

import (
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/content"
	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// ArticleRequest is the payload for article creation and edition / Charge utile de création et d'édition d'article
type ArticleRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// ArticleResponse is the public shape of an article / Forme publique d'un article
type ArticleResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Excerpt    string    `json:"excerpt,omitempty"`
	Category   string    `json:"category"`
	ImageURL   string    `json:"image_url,omitempty"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Views      int64     `json:"views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ArticleToDTO converts domain.Article with full content / Convertit domain.Article avec contenu complet
func ArticleToDTO(a *domain.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:         a.ID,
		Title:      a.Title,
		Content:    a.Content,
		Category:   a.Category,
		ImageURL:   a.ImageURL,
		AuthorID:   a.AuthorID,
		AuthorName: a.AuthorName,
		Views:      a.Views,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ArticleToCardDTO converts domain.Article for listings: the body is replaced
// by a plain-text excerpt / Convertit pour les listes : le corps est remplacé
// par un extrait en texte brut
func ArticleToCardDTO(a *domain.Article, excerptChars int) *ArticleResponse {
	card := ArticleToDTO(a)
	card.Content = ""
	card.Excerpt = content.Excerpt(a.Content, excerptChars)
	return card
}

// ArticleListResponse is a paginated article listing / Liste paginée d'articles
type ArticleListResponse struct {
	Articles []*ArticleResponse `json:"articles"`
	Total    int                `json:"total"`
	Pages    int                `json:"pages"`
}
