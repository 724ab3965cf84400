package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
)

var _ ports.UserRepository = (*userRepository)(nil)

// userRepository implements UserRepository for PostgreSQL / Implémente UserRepository pour PostgreSQL
type userRepository struct {
	db ports.DBTX
}

// NewUserRepository creates user repository / Crée le repository utilisateur
func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password, role, status, phone, country, address, avatar_url, bio, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Status,
		&user.Phone,
		&user.Country,
		&user.Address,
		&user.AvatarURL,
		&user.Bio,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts new user in database / Insère un nouvel utilisateur dans la BD
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (` + userColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.Password,
		user.Role, user.Status, user.Phone, user.Country,
		user.Address, user.AvatarURL, user.Bio,
		user.CreatedAt, user.UpdatedAt,
	)
	return handleError(err)
}

// GetByID retrieves user by ID / Récupère l'utilisateur par ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, handleError(err)
	}
	return user, nil
}

// GetByEmail retrieves user by email / Récupère l'utilisateur par email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, handleError(err)
	}
	return user, nil
}

// List retrieves paginated users with optional search and role filter /
// Récupère les utilisateurs paginés avec recherche et filtre de rôle
func (r *userRepository) List(ctx context.Context, search, role string, offset, limit int) ([]*domain.User, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if search != "" {
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
		where = append(where, fmt.Sprintf("(username ILIKE $%d OR email ILIKE $%d)", len(args)-1, len(args)))
	}
	if role != "" {
		args = append(args, role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM users WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, handleError(err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users WHERE `+cond+`
	          ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, handleError(err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, handleError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, handleError(err)
	}

	return users, totalCount, nil
}

// ListAll retrieves every user for exports / Récupère tous les utilisateurs pour les exports
func (r *userRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, handleError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}
	return users, nil
}

// CountUsers returns total user count / Retourne le nombre total d'utilisateurs
func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, handleError(err)
	}
	return count, nil
}

// UpdateProfile updates the editable profile fields / Met à jour les champs modifiables du profil
func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `UPDATE users
	          SET username = $1, phone = $2, country = $3, address = $4, avatar_url = $5, bio = $6, updated_at = $7
	          WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Phone, user.Country, user.Address,
		user.AvatarURL, user.Bio, time.Now().UTC(), user.ID,
	)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// UpdatePassword updates password hash / Met à jour le hash du mot de passe
func (r *userRepository) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, hashedPassword, time.Now().UTC(), id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// UpdateStatus suspends or reactivates an account / Suspend ou réactive un compte
func (r *userRepository) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	query := `UPDATE users SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// UpdateRole changes user role / Change le rôle utilisateur
func (r *userRepository) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	query := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, role, time.Now().UTC(), id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}

// Delete removes user by ID / Supprime l'utilisateur par ID
func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}
