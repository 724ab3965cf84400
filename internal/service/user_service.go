package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/apprendrelanguage02-max/Matrix/internal/config"
	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common service errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrSelfModification   = errors.New("cannot modify own account")
)

// UserService handles user management operations / Gère les opérations de gestion des utilisateurs
type UserService struct {
	reader ports.UserReader
	writer ports.UserWriter
	conf   *config.Config
}

// NewUserService creates user management service instance / Crée une instance de service de gestion utilisateur
func NewUserService(repo ports.UserRepository, conf *config.Config) *UserService {
	return &UserService{
		reader: repo,
		writer: repo,
		conf:   conf,
	}
}

// GetUser retrieves a user by their ID / Récupère un utilisateur par son ID
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.reader.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the editable profile fields / Applique les champs modifiables du profil
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Username != "" {
		if !isValidUsername(req.Username) {
			return nil, errors.New("username must be between 3 and 50 printable characters")
		}
		user.Username = strings.TrimSpace(req.Username)
	}
	user.Phone = req.Phone
	user.Country = req.Country
	user.Address = req.Address
	user.AvatarURL = req.AvatarURL
	user.Bio = req.Bio

	if err := s.writer.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDup) {
			return nil, errors.New("username already taken")
		}
		slog.Error("failed to update profile", "user_id", userID, "err", err)
		return nil, errors.New("failed to update profile")
	}

	return user, nil
}

// ChangePassword verifies the current password and stores a new hash /
// Vérifie le mot de passe actuel et stocke un nouveau hash
func (s *UserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	if !isStrongPassword(req.NewPassword) {
		return errors.New("password does not meet strength requirements: must be at least 8 characters with uppercase, lowercase, digit, and special character")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.conf.Security.BcryptCost)
	if err != nil {
		slog.Error("failed to hash new password", "err", err)
		return errors.New("failed to process password")
	}

	if err := s.writer.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		slog.Error("failed to update password", "user_id", userID, "err", err)
		return errors.New("failed to update password")
	}

	return nil
}

// ListUsers retrieves paginated users with back-office filters / Récupère les utilisateurs paginés avec filtres
func (s *UserService) ListUsers(ctx context.Context, search, role string, page, limit int) ([]*domain.User, int, int, error) {
	offset := (page - 1) * limit
	users, totalCount, err := s.reader.List(ctx, search, role, offset, limit)
	if err != nil {
		slog.Error("failed to list users", "err", err, "search", search, "role", role)
		return nil, 0, 0, errors.New("failed to retrieve users")
	}
	return users, totalCount, computePages(totalCount, limit), nil
}

// UpdateUserStatus suspends or reactivates an account. Admins cannot change
// their own standing / Suspend ou réactive un compte, jamais le sien
func (s *UserService) UpdateUserStatus(ctx context.Context, adminID, userID string, status domain.UserStatus) error {
	if adminID == userID {
		return ErrSelfModification
	}
	if status != domain.StatusActif && status != domain.StatusSuspendu {
		return errors.New("invalid status")
	}

	if err := s.writer.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return ErrUserNotFound
		}
		slog.Error("failed to update user status", "user_id", userID, "status", status, "err", err)
		return errors.New("failed to update user status")
	}
	return nil
}

// UpdateUserRole changes a user's role / Change le rôle d'un utilisateur
func (s *UserService) UpdateUserRole(ctx context.Context, adminID, userID string, newRole domain.UserRole) error {
	if adminID == userID {
		return ErrSelfModification
	}
	if !newRole.IsValid() {
		return errors.New("invalid role")
	}

	if err := s.writer.UpdateRole(ctx, userID, newRole); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return ErrUserNotFound
		}
		slog.Error("failed to update user role", "user_id", userID, "new_role", newRole, "err", err)
		return errors.New("failed to update user role")
	}
	return nil
}

// DeleteUser permanently removes a user. Admins cannot delete themselves /
// Supprime définitivement un utilisateur, jamais soi-même
func (s *UserService) DeleteUser(ctx context.Context, adminID, userID string) error {
	if adminID == userID {
		return ErrSelfModification
	}

	if err := s.writer.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return ErrUserNotFound
		}
		slog.Error("failed to delete user", "user_id", userID, "err", err)
		return errors.New("failed to delete user")
	}
	return nil
}
