package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/app"
	"github.com/apprendrelanguage02-max/Matrix/internal/config"
	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/metrics"
	"github.com/apprendrelanguage02-max/Matrix/internal/mocks"
	"github.com/apprendrelanguage02-max/Matrix/internal/service"
	"github.com/apprendrelanguage02-max/Matrix/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type muxFixture struct {
	handler    http.Handler
	users      *mocks.MockUserRepository
	articles   *mocks.MockArticleRepository
	properties *mocks.MockPropertyRepository
	payments   *mocks.MockPaymentRepository
}

func newMuxFixture(t *testing.T) *muxFixture {
	t.Helper()

	conf := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:           testSecret,
			AccessTokenDuration: time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Content:  config.ContentConfig{ExcerptMaxChars: 200},
	}

	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	properties := mocks.NewMockPropertyRepository()
	payments := mocks.NewMockPaymentRepository()
	m := metrics.NewMetrics(prometheus.NewRegistry())

	container := &app.Container{
		UserRepo:     users,
		ArticleRepo:  articles,
		PropertyRepo: properties,
		PaymentRepo:  payments,
		UserSvc:      service.NewUserService(users, conf),
		AuthSvc:      service.NewAuthService(users, conf, m),
		ArticleSvc:   service.NewArticleService(articles),
		PropertySvc:  service.NewPropertyService(properties),
		PaymentSvc:   service.NewPaymentService(payments, properties, m),
		AdminSvc:     service.NewAdminService(users, articles, properties, payments),
		ViewTracker:  service.NewViewTracker(articles, properties, nil, m),
		Config:       conf,
		Metrics:      m,
	}

	return &muxFixture{
		handler:    NewMux(NewHandler(container), conf, container),
		users:      users,
		articles:   articles,
		properties: properties,
		payments:   payments,
	}
}

func (f *muxFixture) signIn(t *testing.T, role domain.UserRole) string {
	t.Helper()
	user := &domain.User{
		ID:       "u-" + string(role),
		Username: "test-" + string(role),
		Email:    string(role) + "@example.com",
		Role:     role,
		Status:   domain.StatusActif,
	}
	require.NoError(t, f.users.Create(context.Background(), user))

	token, _, err := auth.GenerateToken(user.ID, string(role), testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (f *muxFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestMuxPublicListingServesCards(t *testing.T) {
	f := newMuxFixture(t)
	f.articles.Articles["a-1"] = &domain.Article{
		ID: "a-1", Title: "Budget voté",
		Content:  "Le budget [img:https://cdn.example.com/a.jpg] est adopté.",
		Category: domain.CategoryEconomie, AuthorName: "binta",
	}

	rec := f.do(t, http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.ArticleListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.Len(t, out.Articles, 1)
	assert.Equal(t, 1, out.Total)
	assert.Empty(t, out.Articles[0].Content, "listing cards never carry the body")
	assert.Equal(t, "Le budget est adopté.", out.Articles[0].Excerpt)
}

func TestMuxTrackViewEndpoints(t *testing.T) {
	f := newMuxFixture(t)
	f.articles.Articles["a-1"] = &domain.Article{ID: "a-1", Title: "Budget voté"}
	f.properties.Properties["p-1"] = &domain.Property{ID: "p-1", Title: "Villa à Kipé"}

	rec := f.do(t, http.MethodPost, "/api/articles/a-1/view", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(1), f.articles.Articles["a-1"].Views)

	rec = f.do(t, http.MethodPost, "/api/properties/p-1/view", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(1), f.properties.Properties["p-1"].Views)

	// A read never increments by itself / Une lecture n'incrémente jamais seule
	f.do(t, http.MethodGet, "/api/articles/a-1", "", nil)
	assert.Equal(t, int64(1), f.articles.Articles["a-1"].Views)
}

func TestMuxReferenceEndpoints(t *testing.T) {
	f := newMuxFixture(t)

	rec := f.do(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories map[string][]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&categories))
	assert.Len(t, categories["categories"], 5)

	rec = f.do(t, http.MethodGet, "/api/cities", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cities map[string][]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cities))
	assert.Contains(t, cities["cities"], "N'Zérékoré")
}

func TestMuxGuardedRoutes(t *testing.T) {
	f := newMuxFixture(t)
	visiteur := f.signIn(t, domain.RoleVisiteur)
	auteur := f.signIn(t, domain.RoleAuteur)

	tests := []struct {
		name             string
		method, path     string
		token            string
		expectedCode     int
		expectedRedirect string
	}{
		{"anonymous me", http.MethodGet, "/api/me", "", http.StatusUnauthorized, "/connexion"},
		{"visiteur publishes article", http.MethodPost, "/api/articles", visiteur, http.StatusForbidden, "/profil"},
		{"visiteur publishes listing", http.MethodPost, "/api/properties", visiteur, http.StatusForbidden, "/immobilier"},
		{"auteur opens back-office", http.MethodGet, "/api/admin/stats", auteur, http.StatusForbidden, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.expectedCode, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.expectedRedirect, body["redirect"])
		})
	}
}

func TestMuxAuthorPublishesArticle(t *testing.T) {
	f := newMuxFixture(t)
	auteur := f.signIn(t, domain.RoleAuteur)

	rec := f.do(t, http.MethodPost, "/api/articles", auteur, dto.ArticleRequest{
		Title:    "Budget voté",
		Content:  "Le budget est adopté.",
		Category: domain.CategoryEconomie,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var out dto.ArticleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "test-auteur", out.AuthorName)
	assert.Contains(t, f.articles.Articles, out.ID)
}

func TestMuxPaymentFlow(t *testing.T) {
	f := newMuxFixture(t)
	visiteur := f.signIn(t, domain.RoleVisiteur)
	f.properties.Properties["p-1"] = &domain.Property{
		ID: "p-1", Title: "Villa à Kipé", Price: 850_000_000,
		Status: domain.PropertyDisponible,
	}

	rec := f.do(t, http.MethodPost, "/api/payments", visiteur, dto.PaymentRequest{
		PropertyID: "p-1",
		Amount:     850_000_000,
		Method:     "orange_money",
		Phone:      "+224620000000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var out dto.PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Regexp(t, `^GIMO-[0-9A-F]{12}$`, out.Reference)
	assert.Equal(t, "en_attente", out.Status)

	rec = f.do(t, http.MethodGet, "/api/payments", visiteur, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []*dto.PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&mine))
	assert.Len(t, mine, 1)
}

func TestMuxAdminModeratesPayment(t *testing.T) {
	f := newMuxFixture(t)
	admin := f.signIn(t, domain.RoleAdmin)
	f.payments.Payments["pay-1"] = &domain.Payment{
		ID: "pay-1", Reference: "GIMO-0011AABBCCDD", UserID: "u-9",
		Status: domain.PaymentEnAttente, Method: domain.MethodPaycard,
	}

	rec := f.do(t, http.MethodPatch, "/api/admin/payments/pay-1/status", admin,
		dto.PaymentStatusRequest{Status: "confirme"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaymentConfirme, f.payments.Payments["pay-1"].Status)
}
