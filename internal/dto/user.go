package dto

import (
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// RegisterRequest is the payload for account creation / Charge utile de création de compte
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // visiteur by default, auteur or agent on request / visiteur par défaut
}

// LoginRequest is the payload for authentication / Charge utile d'authentification
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the payload for profile edition / Charge utile d'édition du profil
type UpdateProfileRequest struct {
	Username  string `json:"username"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Address   string `json:"address"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// ChangePasswordRequest is the payload for password change / Charge utile de changement de mot de passe
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse is the public shape of an account / Forme publique d'un compte
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Phone     string    `json:"phone,omitempty"`
	Country   string    `json:"country,omitempty"`
	Address   string    `json:"address,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse pairs the access token with its account / Associe le token d'accès à son compte
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// UserToDTO converts domain.User to UserResponse / Convertit domain.User en UserResponse
func UserToDTO(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
		Phone:     user.Phone,
		Country:   user.Country,
		Address:   user.Address,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}

// UsersToDTO converts a user slice / Convertit une liste d'utilisateurs
func UsersToDTO(users []*domain.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserToDTO(u))
	}
	return out
}

// UserListResponse is a paginated user listing / Liste paginée d'utilisateurs
type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	Total int             `json:"total"`
	Pages int             `json:"pages"`
}
