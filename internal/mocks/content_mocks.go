package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
	"github.com/apprendrelanguage02-max/Matrix/internal/queue"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository"
)

// MockArticleRepository is an in-memory implementation of
// ports.ArticleRepository for testing / Implémentation en mémoire pour les tests
type MockArticleRepository struct {
	Articles map[string]*domain.Article

	CreateError error
	ListError   error

	IncrementViewsCalls int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[string]*domain.Article)}
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	article, exists := m.Articles[id]
	if !exists {
		return nil, repository.ErrNoRecord
	}
	clone := *article
	return &clone, nil
}

func (m *MockArticleRepository) List(ctx context.Context, q listquery.ArticleQuery, limit int) ([]*domain.Article, int, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	matches := make([]*domain.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		if q.Category != "" && a.Category != q.Category {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(q.Search)) {
			continue
		}
		clone := *a
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })

	total := len(matches)
	offset := (q.Page - 1) * limit
	if offset >= total {
		return []*domain.Article{}, total, nil
	}
	end := min(offset+limit, total)
	return matches[offset:end], total, nil
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Article, error) {
	out := make([]*domain.Article, 0)
	for _, a := range m.Articles {
		if a.AuthorID == authorID {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockArticleRepository) ListAll(ctx context.Context) ([]*domain.Article, error) {
	out := make([]*domain.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockArticleRepository) CountArticles(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	clone := *article
	m.Articles[article.ID] = &clone
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	stored, exists := m.Articles[article.ID]
	if !exists {
		return repository.ErrNoRecord
	}
	stored.Title = article.Title
	stored.Content = article.Content
	stored.Category = article.Category
	stored.ImageURL = article.ImageURL
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if _, exists := m.Articles[id]; !exists {
		return repository.ErrNoRecord
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) error {
	m.IncrementViewsCalls++
	article, exists := m.Articles[id]
	if !exists {
		return repository.ErrNoRecord
	}
	article.Views++
	return nil
}

// MockPropertyRepository is an in-memory implementation of
// ports.PropertyRepository for testing / Implémentation en mémoire pour les tests
type MockPropertyRepository struct {
	Properties map[string]*domain.Property

	CreateError error
	ListError   error

	IncrementViewsCalls int
}

func NewMockPropertyRepository() *MockPropertyRepository {
	return &MockPropertyRepository{Properties: make(map[string]*domain.Property)}
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	property, exists := m.Properties[id]
	if !exists {
		return nil, repository.ErrNoRecord
	}
	clone := *property
	return &clone, nil
}

func (m *MockPropertyRepository) List(ctx context.Context, q listquery.PropertyQuery, limit int) ([]*domain.Property, int, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	matches := make([]*domain.Property, 0, len(m.Properties))
	for _, p := range m.Properties {
		if q.Type != "" && string(p.Type) != q.Type {
			continue
		}
		if q.City != "" && p.City != q.City {
			continue
		}
		if !q.FilterAll() && q.Status != "" && string(p.Status) != q.Status {
			continue
		}
		if q.PriceMin > 0 && p.Price < q.PriceMin {
			continue
		}
		if q.PriceMax > 0 && p.Price > q.PriceMax {
			continue
		}
		clone := *p
		matches = append(matches, &clone)
	}

	switch q.Sort {
	case listquery.SortPriceAsc:
		sort.Slice(matches, func(i, j int) bool { return matches[i].Price < matches[j].Price })
	case listquery.SortPriceDesc:
		sort.Slice(matches, func(i, j int) bool { return matches[i].Price > matches[j].Price })
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	}

	total := len(matches)
	offset := (q.Page - 1) * limit
	if offset >= total {
		return []*domain.Property{}, total, nil
	}
	end := min(offset+limit, total)
	return matches[offset:end], total, nil
}

func (m *MockPropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error) {
	out := make([]*domain.Property, 0)
	for _, p := range m.Properties {
		if p.OwnerID == ownerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockPropertyRepository) ListAll(ctx context.Context) ([]*domain.Property, error) {
	out := make([]*domain.Property, 0, len(m.Properties))
	for _, p := range m.Properties {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockPropertyRepository) CountProperties(ctx context.Context) (int, error) {
	return len(m.Properties), nil
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	clone := *property
	m.Properties[property.ID] = &clone
	return nil
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	stored, exists := m.Properties[property.ID]
	if !exists {
		return repository.ErrNoRecord
	}
	stored.Title = property.Title
	stored.Description = property.Description
	stored.Type = property.Type
	stored.City = property.City
	stored.Price = property.Price
	stored.Surface = property.Surface
	stored.Rooms = property.Rooms
	stored.ImageURL = property.ImageURL
	return nil
}

func (m *MockPropertyRepository) UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error {
	property, exists := m.Properties[id]
	if !exists {
		return repository.ErrNoRecord
	}
	property.Status = status
	return nil
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id string) error {
	if _, exists := m.Properties[id]; !exists {
		return repository.ErrNoRecord
	}
	delete(m.Properties, id)
	return nil
}

func (m *MockPropertyRepository) IncrementViews(ctx context.Context, id string) error {
	m.IncrementViewsCalls++
	property, exists := m.Properties[id]
	if !exists {
		return repository.ErrNoRecord
	}
	property.Views++
	return nil
}

// MockPaymentRepository is an in-memory implementation of
// ports.PaymentRepository for testing / Implémentation en mémoire pour les tests
type MockPaymentRepository struct {
	Payments map[string]*domain.Payment

	CreateError error
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{Payments: make(map[string]*domain.Payment)}
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	payment, exists := m.Payments[id]
	if !exists {
		return nil, repository.ErrNoRecord
	}
	clone := *payment
	return &clone, nil
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	out := make([]*domain.Payment, 0)
	for _, p := range m.Payments {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockPaymentRepository) List(ctx context.Context, status, method string, offset, limit int) ([]*domain.Payment, int, error) {
	matches := make([]*domain.Payment, 0, len(m.Payments))
	for _, p := range m.Payments {
		if status != "" && string(p.Status) != status {
			continue
		}
		if method != "" && string(p.Method) != method {
			continue
		}
		clone := *p
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	total := len(matches)
	if offset >= total {
		return []*domain.Payment{}, total, nil
	}
	end := min(offset+limit, total)
	return matches[offset:end], total, nil
}

func (m *MockPaymentRepository) ListAll(ctx context.Context) ([]*domain.Payment, error) {
	out := make([]*domain.Payment, 0, len(m.Payments))
	for _, p := range m.Payments {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockPaymentRepository) CountPayments(ctx context.Context) (int, error) {
	return len(m.Payments), nil
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	clone := *payment
	m.Payments[payment.ID] = &clone
	return nil
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	payment, exists := m.Payments[id]
	if !exists {
		return repository.ErrNoRecord
	}
	payment.Status = status
	return nil
}

// MockPublisher records published view events / Enregistre les événements de vue publiés
type MockPublisher struct {
	Events       []queue.ViewEvent
	PublishError error
	PingError    error
	CloseCalls   int
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishView(event queue.ViewEvent) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockPublisher) Ping() error {
	return m.PingError
}

func (m *MockPublisher) Close() error {
	m.CloseCalls++
	return nil
}
