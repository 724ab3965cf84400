package service

import (
	"context"
	"testing"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/listquery"
	"github.com/apprendrelanguage02-max/Matrix/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAgent() *domain.User {
	return &domain.User{ID: "u-1", Username: "mamadou", Role: domain.RoleAgent, Status: domain.StatusActif}
}

func propertyRequest() dto.PropertyRequest {
	return dto.PropertyRequest{
		Title:       "Villa à Kipé",
		Description: "<p>Trois chambres, vue mer.</p>",
		Type:        string(domain.PropertyVente),
		City:        "Conakry",
		Price:       850_000_000,
		Surface:     220,
		Rooms:       5,
	}
}

func TestPropertyServiceCreate(t *testing.T) {
	properties := mocks.NewMockPropertyRepository()
	svc := NewPropertyService(properties)

	created, err := svc.Create(context.Background(), testAgent(), propertyRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.PropertyDisponible, created.Status, "new listings always start disponible")
	assert.Equal(t, "u-1", created.OwnerID)
	assert.Equal(t, "mamadou", created.OwnerName)
	assert.Contains(t, properties.Properties, created.ID)
}

func TestPropertyServiceCreateValidation(t *testing.T) {
	svc := NewPropertyService(mocks.NewMockPropertyRepository())

	tests := []struct {
		name   string
		mutate func(*dto.PropertyRequest)
	}{
		{"blank title", func(r *dto.PropertyRequest) { r.Title = " " }},
		{"unknown type", func(r *dto.PropertyRequest) { r.Type = "echange" }},
		{"unknown city", func(r *dto.PropertyRequest) { r.City = "Dakar" }},
		{"zero price", func(r *dto.PropertyRequest) { r.Price = 0 }},
		{"negative surface", func(r *dto.PropertyRequest) { r.Surface = -1 }},
		{"negative rooms", func(r *dto.PropertyRequest) { r.Rooms = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := propertyRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), testAgent(), req)
			assert.Error(t, err)
		})
	}
}

func TestPropertyServiceList(t *testing.T) {
	properties := mocks.NewMockPropertyRepository()
	svc := NewPropertyService(properties)

	sold, err := svc.Create(context.Background(), testAgent(), propertyRequest())
	require.NoError(t, err)
	req := propertyRequest()
	req.Title = "Studio à Labé"
	req.City = "Labé"
	req.Price = 2_500_000
	_, err = svc.Create(context.Background(), testAgent(), req)
	require.NoError(t, err)

	// Mark the villa sold, the public listing must hide it / Marque la villa
	// vendue, la liste publique doit la cacher
	_, err = svc.UpdateStatus(context.Background(), testAgent(), sold.ID, domain.PropertyVendu)
	require.NoError(t, err)

	list, total, pages, err := svc.List(context.Background(), listquery.DefaultPropertyQuery(), 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, pages)
	assert.Equal(t, "Studio à Labé", list[0].Title)

	all := listquery.DefaultPropertyQuery().WithStatus(listquery.StatusAll)
	_, total, _, err = svc.List(context.Background(), all, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total, "the tous filter shows sold listings too")
}

func TestPropertyServiceOwnership(t *testing.T) {
	properties := mocks.NewMockPropertyRepository()
	svc := NewPropertyService(properties)

	created, err := svc.Create(context.Background(), testAgent(), propertyRequest())
	require.NoError(t, err)

	otherAgent := &domain.User{ID: "u-2", Username: "fode", Role: domain.RoleAgent}
	admin := &domain.User{ID: "u-3", Username: "root", Role: domain.RoleAdmin}

	t.Run("another agent cannot update", func(t *testing.T) {
		_, err := svc.Update(context.Background(), otherAgent, created.ID, propertyRequest())
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("another agent cannot change the status", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), otherAgent, created.ID, domain.PropertyReserve)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("the owner moves the status", func(t *testing.T) {
		updated, err := svc.UpdateStatus(context.Background(), testAgent(), created.ID, domain.PropertyReserve)
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyReserve, updated.Status)
	})

	t.Run("invalid status refused", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), testAgent(), created.ID, domain.PropertyStatus("tous"))
		assert.Error(t, err)
	})

	t.Run("the admin deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), admin, created.ID))
		_, err := svc.Get(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}

func TestPropertyServiceListByOwner(t *testing.T) {
	properties := mocks.NewMockPropertyRepository()
	svc := NewPropertyService(properties)

	_, err := svc.Create(context.Background(), testAgent(), propertyRequest())
	require.NoError(t, err)
	other := &domain.User{ID: "u-2", Username: "fode", Role: domain.RoleAgent}
	_, err = svc.Create(context.Background(), other, propertyRequest())
	require.NoError(t, err)

	mine, err := svc.ListByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "u-1", mine[0].OwnerID)
}
