package service

import (
	"context"
	"testing"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, users *mocks.MockUserRepository, id, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Role:     domain.RoleVisiteur,
		Status:   domain.StatusActif,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserServiceGetUser(t *testing.T) {
	users := mocks.NewMockUserRepository()
	svc := NewUserService(users, testConfig())
	seedUser(t, users, "u-1", "binta", "Str0ngPass!")

	user, err := svc.GetUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "binta", user.Username)

	_, err = svc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceUpdateProfile(t *testing.T) {
	users := mocks.NewMockUserRepository()
	svc := NewUserService(users, testConfig())
	seedUser(t, users, "u-1", "binta", "Str0ngPass!")

	updated, err := svc.UpdateProfile(context.Background(), "u-1", dto.UpdateProfileRequest{
		Username: "binta2",
		Phone:    "+224620000000",
		Country:  "Guinée",
		Bio:      "Agent à Conakry",
	})
	require.NoError(t, err)
	assert.Equal(t, "binta2", updated.Username)
	assert.Equal(t, "+224620000000", updated.Phone)
	assert.Equal(t, "Guinée", users.Users["u-1"].Country)
}

func TestUserServiceUpdateProfileKeepsUsernameWhenEmpty(t *testing.T) {
	users := mocks.NewMockUserRepository()
	svc := NewUserService(users, testConfig())
	seedUser(t, users, "u-1", "binta", "Str0ngPass!")

	updated, err := svc.UpdateProfile(context.Background(), "u-1", dto.UpdateProfileRequest{Bio: "nouvelle bio"})
	require.NoError(t, err)
	assert.Equal(t, "binta", updated.Username, "an empty username means keep the current one")
}

func TestUserServiceUpdateProfileInvalidUsername(t *testing.T) {
	users := mocks.NewMockUserRepository()
	svc := NewUserService(users, testConfig())
	seedUser(t, users, "u-1", "binta", "Str0ngPass!")

	_, err := svc.UpdateProfile(context.Background(), "u-1", dto.UpdateProfileRequest{Username: "ab"})
	assert.Error(t, err)
}

func TestUserServiceChangePassword(t *testing.T) {
	users := mocks.NewMockUserRepository()
	svc := NewUserService(users, testConfig())
	seedUser(t, users, "u-1", "binta", "Str0ngPass!")

	err := svc.ChangePassword(context.Background(), "u-1", dto.ChangePasswordRequest{
		CurrentPassword: "Str0ngPass!",
		NewPassword:     "N3wStrong!",
	})
	require.NoError(t, err)

	// The stored hash matches the new password / Le hash stocké correspond au
	// nouveau mot de passe
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(users.Users["u-1"].Password), []byte("N3wStrong!")))
}

func TestUserServiceChangePasswordFailures(t *testing.T) {
	users := mocks.NewMockUserRepository()
	svc := NewUserService(users, testConfig())
	seedUser(t, users, "u-1", "binta", "Str0ngPass!")

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), "u-1", dto.ChangePasswordRequest{
			CurrentPassword: "WrongPass1!",
			NewPassword:     "N3wStrong!",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), "u-1", dto.ChangePasswordRequest{
			CurrentPassword: "Str0ngPass!",
			NewPassword:     "weak",
		})
		assert.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), "missing", dto.ChangePasswordRequest{
			CurrentPassword: "Str0ngPass!",
			NewPassword:     "N3wStrong!",
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserServiceListUsers(t *testing.T) {
	users := mocks.NewMockUserRepository()
	svc := NewUserService(users, testConfig())
	seedUser(t, users, "u-1", "binta", "Str0ngPass!")
	seedUser(t, users, "u-2", "mamadou", "Str0ngPass!")
	seedUser(t, users, "u-3", "fatou", "Str0ngPass!")

	list, total, pages, err := svc.ListUsers(context.Background(), "", "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, pages)

	list, total, _, err = svc.ListUsers(context.Background(), "binta", "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
}

func TestUserServiceAdminModeration(t *testing.T) {
	users := mocks.NewMockUserRepository()
	svc := NewUserService(users, testConfig())
	seedUser(t, users, "admin-1", "admin", "Str0ngPass!")
	seedUser(t, users, "u-1", "binta", "Str0ngPass!")

	t.Run("suspend", func(t *testing.T) {
		err := svc.UpdateUserStatus(context.Background(), "admin-1", "u-1", domain.StatusSuspendu)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSuspendu, users.Users["u-1"].Status)
	})

	t.Run("promote", func(t *testing.T) {
		err := svc.UpdateUserRole(context.Background(), "admin-1", "u-1", domain.RoleAuteur)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAuteur, users.Users["u-1"].Role)
	})

	t.Run("invalid role refused", func(t *testing.T) {
		err := svc.UpdateUserRole(context.Background(), "admin-1", "u-1", domain.UserRole("superuser"))
		assert.Error(t, err)
	})

	t.Run("self-modification refused", func(t *testing.T) {
		// Admins never change their own standing, role or existence / Un
		// admin ne change jamais son propre état, rôle ou existence
		assert.ErrorIs(t, svc.UpdateUserStatus(context.Background(), "admin-1", "admin-1", domain.StatusSuspendu), ErrSelfModification)
		assert.ErrorIs(t, svc.UpdateUserRole(context.Background(), "admin-1", "admin-1", domain.RoleVisiteur), ErrSelfModification)
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), "admin-1", "admin-1"), ErrSelfModification)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(context.Background(), "admin-1", "u-1"))
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), "admin-1", "u-1"), ErrUserNotFound)
	})
}
