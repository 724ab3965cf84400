package web

import (
	"errors"
	"net/http"

	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
	"github.com/apprendrelanguage02-max/Matrix/internal/service"
)

// ListArticles serves the public newsroom listing / Sert la liste publique des articles
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := listquery.ParseArticleQuery(r.URL.Query())

	articles, total, pages, err := h.container.ArticleSvc.List(r.Context(), q, pageSize(r))
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cards := make([]*dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, dto.ArticleToCardDTO(a, h.container.Config.Content.ExcerptMaxChars))
	}

	jsonResponse(w, dto.ArticleListResponse{Articles: cards, Total: total, Pages: pages})
}

// GetArticle serves one article with its full body / Sert un article avec son corps complet
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.container.ArticleSvc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			ErrorResponse(w, "article not found", http.StatusNotFound)
			return
		}
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, dto.ArticleToDTO(article))
}

// TrackArticleView counts one read, fired by the client after display. The
// response never carries the outcome, a lost view is not the reader's problem /
// Compte une lecture, déclenché par le client après affichage
func (h *Handler) TrackArticleView(w http.ResponseWriter, r *http.Request) {
	h.container.ViewTracker.TrackArticleView(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// ListMyArticles serves the signed-in author's articles / Sert les articles de l'auteur connecté
func (h *Handler) ListMyArticles(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	articles, err := h.container.ArticleSvc.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]*dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, dto.ArticleToDTO(a))
	}
	jsonResponse(w, out)
}

// CreateArticle publishes a new article / Publie un nouvel article
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.ArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	article, err := h.container.ArticleSvc.Create(r.Context(), user, req)
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdResponse(w, dto.ArticleToDTO(article))
}

// UpdateArticle edits an article, owner or admin only / Édite un article, propriétaire ou admin
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.ArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	article, err := h.container.ArticleSvc.Update(r.Context(), user, r.PathValue("id"), req)
	if err != nil {
		h.articleError(w, err)
		return
	}

	jsonResponse(w, dto.ArticleToDTO(article))
}

// DeleteArticle removes an article, owner or admin only / Supprime un article, propriétaire ou admin
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.container.ArticleSvc.Delete(r.Context(), user, r.PathValue("id")); err != nil {
		h.articleError(w, err)
		return
	}

	jsonResponse(w, map[string]string{"message": "Article deleted successfully"})
}

func (h *Handler) articleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrArticleNotFound):
		ErrorResponse(w, "article not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNotOwner):
		ErrorResponse(w, "not allowed to modify this article", http.StatusForbidden)
	default:
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
	}
}
