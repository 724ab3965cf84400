package ports

import (
	"context"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// UserReader reads user data / Lit les données utilisateur
type UserReader interface {
	// GetByID retrieves user by unique ID / Récupère l'utilisateur par ID unique
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves user by email / Récupère l'utilisateur par email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves paginated users, optionally filtered by a name/email
	// search and a role / Récupère les utilisateurs paginés, filtrés par
	// recherche et rôle
	List(ctx context.Context, search string, role string, offset, limit int) ([]*domain.User, int, error)

	// ListAll retrieves every user, for back-office exports / Récupère tous les utilisateurs, pour les exports
	ListAll(ctx context.Context) ([]*domain.User, error)

	// CountUsers returns total user count / Retourne le nombre total d'utilisateurs
	CountUsers(ctx context.Context) (int, error)
}

// UserWriter creates and mutates users / Crée et modifie les utilisateurs
type UserWriter interface {
	// Create inserts new user / Insère un nouvel utilisateur
	Create(ctx context.Context, user *domain.User) error

	// UpdateProfile updates the editable profile fields / Met à jour les champs modifiables du profil
	UpdateProfile(ctx context.Context, user *domain.User) error

	// UpdatePassword updates password hash / Met à jour le hash du mot de passe
	UpdatePassword(ctx context.Context, id string, hashedPassword string) error

	// UpdateStatus suspends or reactivates an account / Suspend ou réactive un compte
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error

	// UpdateRole changes user role / Change le rôle de l'utilisateur
	UpdateRole(ctx context.Context, id string, role domain.UserRole) error

	// Delete removes user by ID / Supprime l'utilisateur par ID
	Delete(ctx context.Context, id string) error
}

// UserRepository is the composite interface for all user operations / Interface composite pour toutes les opérations utilisateur
type UserRepository interface {
	UserReader
	UserWriter
}
