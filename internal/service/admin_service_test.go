package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminFixtures(t *testing.T) *AdminService {
	t.Helper()
	users := mocks.NewMockUserRepository()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		ID: "u-1", Username: "binta", Email: "binta@example.com",
		Role: domain.RoleAuteur, Status: domain.StatusActif,
		BaseModel: domain.BaseModel{CreatedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
	}))

	articles := mocks.NewMockArticleRepository()
	articles.Articles["a-1"] = &domain.Article{ID: "a-1", Title: "Budget voté", Category: domain.CategoryEconomie, AuthorName: "binta", Views: 42}
	articles.Articles["a-2"] = &domain.Article{ID: "a-2", Title: "Match à Kankan", Category: domain.CategorySport, AuthorName: "binta"}

	properties := mocks.NewMockPropertyRepository()
	properties.Properties["p-1"] = &domain.Property{
		ID: "p-1", Title: "Villa à Kipé", Type: domain.PropertyVente, City: "Conakry",
		Price: 850_000_000, Status: domain.PropertyDisponible, OwnerName: "mamadou",
	}

	payments := mocks.NewMockPaymentRepository()
	payments.Payments["pay-1"] = &domain.Payment{
		ID: "pay-1", Reference: "GIMO-0011AABBCCDD", UserID: "u-1", PropertyID: "p-1",
		Amount: 850_000_000, Currency: "GNF",
		Method: domain.MethodOrangeMoney, Status: domain.PaymentEnAttente,
	}

	return NewAdminService(users, articles, properties, payments)
}

func TestAdminServiceStats(t *testing.T) {
	svc := adminFixtures(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Users)
	assert.Equal(t, 2, stats.Articles)
	assert.Equal(t, 1, stats.Properties)
	assert.Equal(t, 1, stats.Payments)
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestAdminServiceExportUsers(t *testing.T) {
	svc := adminFixtures(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportUsers(context.Background(), &buf))

	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "username", "email", "role", "status", "created_at"}, records[0])
	assert.Equal(t, "binta", records[1][1])
	assert.Equal(t, "auteur", records[1][3])
	assert.Equal(t, "2026-05-01T12:00:00Z", records[1][5])
}

func TestAdminServiceExportArticles(t *testing.T) {
	svc := adminFixtures(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportArticles(context.Background(), &buf))

	records := readCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "title", "category", "author", "views", "created_at"}, records[0])
	// Bodies never leave through the export / Les corps ne sortent jamais par l'export
	assert.Equal(t, "42", records[1][4])
}

func TestAdminServiceExportProperties(t *testing.T) {
	svc := adminFixtures(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportProperties(context.Background(), &buf))

	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "title", "type", "city", "price", "status", "owner", "created_at"}, records[0])
	assert.Equal(t, "850000000", records[1][4])
	assert.Equal(t, "disponible", records[1][5])
}

func TestAdminServiceExportPayments(t *testing.T) {
	svc := adminFixtures(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportPayments(context.Background(), &buf))

	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "reference", "user_id", "property_id", "amount", "currency", "method", "status", "created_at"}, records[0])
	assert.Equal(t, "GIMO-0011AABBCCDD", records[1][1])
	assert.Equal(t, "GNF", records[1][5])
}
