// Package client carries the platform's client-side core: the HTTP adapter
// talking to the JSON API, the persisted session, the guarded navigation
// table and the listing controller. It holds no rendering concern, only the
// state and decisions a front-end needs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
)

// APIError is a non-2xx response decoded into its JSON body. Redirect carries
// the path a guard denial points to / Réponse non-2xx décodée, Redirect porte
// le chemin indiqué par un refus de garde
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Redirect   string `json:"redirect,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// Client is the HTTP adapter for the platform API / Adaptateur HTTP pour l'API de la plateforme
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the given base URL / Crée un client pour l'URL de base donnée
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer token sent on every request. An empty token
// returns the client to anonymous mode / Installe le token porteur, un token
// vide ramène le client en mode anonyme
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// A body that does not decode stays a bare status error / Un corps
		// indécodable reste une erreur de statut nu
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Login authenticates and returns the token with its account / Authentifie et
// retourne le token avec son compte
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and signs it in / Crée un compte et le connecte
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the signed-in account / Récupère le compte connecté
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListArticles fetches one page of the newsroom / Récupère une page de la rédaction
func (c *Client) ListArticles(ctx context.Context, q listquery.ArticleQuery) (*dto.ArticleListResponse, error) {
	var out dto.ArticleListResponse
	if err := c.do(ctx, http.MethodGet, "/api/articles", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArticle fetches one article / Récupère un article
func (c *Client) GetArticle(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	var out dto.ArticleResponse
	if err := c.do(ctx, http.MethodGet, "/api/articles/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackArticleView signals one read. Fire and forget, the error only matters
// to callers that log it / Signale une lecture, au mieux
func (c *Client) TrackArticleView(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/articles/"+url.PathEscape(id)+"/view", nil, nil, nil)
}

// ListProperties fetches one page of the marketplace / Récupère une page du marché immobilier
func (c *Client) ListProperties(ctx context.Context, q listquery.PropertyQuery) (*dto.PropertyListResponse, error) {
	var out dto.PropertyListResponse
	if err := c.do(ctx, http.MethodGet, "/api/properties", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProperty fetches one listing / Récupère une annonce
func (c *Client) GetProperty(ctx context.Context, id string) (*dto.PropertyResponse, error) {
	var out dto.PropertyResponse
	if err := c.do(ctx, http.MethodGet, "/api/properties/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackPropertyView signals one view / Signale une vue
func (c *Client) TrackPropertyView(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/properties/"+url.PathEscape(id)+"/view", nil, nil, nil)
}

// CreatePayment opens a payment intent on a listing / Ouvre une intention de paiement sur une annonce
func (c *Client) CreatePayment(ctx context.Context, req dto.PaymentRequest) (*dto.PaymentResponse, error) {
	var out dto.PaymentResponse
	if err := c.do(ctx, http.MethodPost, "/api/payments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyPayments fetches the signed-in account's payment intents / Récupère les intentions de paiement du compte
func (c *Client) MyPayments(ctx context.Context) ([]*dto.PaymentResponse, error) {
	var out []*dto.PaymentResponse
	if err := c.do(ctx, http.MethodGet, "/api/payments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
