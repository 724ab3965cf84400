package domain

// UserRole represents user's role for authorization / Représente le rôle utilisateur pour l'autorisation
type UserRole string

const (
	RoleVisiteur UserRole = "visiteur" // Default role for new users / Rôle par défaut pour nouveaux utilisateurs
	RoleAgent    UserRole = "agent"    // Real-estate agent, can publish listings / Agent immobilier, peut publier des annonces
	RoleAuteur   UserRole = "auteur"   // Editorial author, can publish articles / Auteur éditorial, peut publier des articles
	RoleAdmin    UserRole = "admin"    // Full admin access / Accès administrateur complet
)

// UserStatus represents the account standing / Représente l'état du compte
type UserStatus string

const (
	StatusActif    UserStatus = "actif"
	StatusSuspendu UserStatus = "suspendu"
)

// IsValid checks if role is valid / Vérifie si le rôle est valide
func (r UserRole) IsValid() bool {
	return r == RoleVisiteur || r == RoleAgent || r == RoleAuteur || r == RoleAdmin
}

// roleHierarchy orders roles by privilege (admin > auteur > agent > visiteur).
// Editorial authors sit above agents so they keep marketplace access.
var roleHierarchy = map[UserRole]int{
	RoleVisiteur: 1,
	RoleAgent:    2,
	RoleAuteur:   3,
	RoleAdmin:    4,
}

// User represents domain user entity / Représente l'entité utilisateur du domaine
type User struct {
	BaseModel
	ID        string
	Username  string
	Email     string
	Password  string // Hashed password / Mot de passe haché
	Role      UserRole
	Status    UserStatus
	Phone     string
	Country   string
	Address   string
	AvatarURL string
	Bio       string
}

// IsSuspended checks if the account is suspended / Vérifie si le compte est suspendu
func (u *User) IsSuspended() bool {
	return u.Status == StatusSuspendu
}

// HasRole checks exact role match / Vérifie la correspondance exacte du rôle
func (u *User) HasRole(role UserRole) bool {
	return u.Role == role
}

// IsAdmin checks admin privileges / Vérifie les privilèges admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasMinimumRole checks role hierarchy (admin > auteur > agent > visiteur) / Vérifie la hiérarchie des rôles
func (u *User) HasMinimumRole(role UserRole) bool {
	return roleHierarchy[u.Role] >= roleHierarchy[role]
}

// RoleAtLeast reports whether role reaches the given minimum / Indique si le rôle atteint le minimum donné
func RoleAtLeast(role, minimum UserRole) bool {
	return roleHierarchy[role] >= roleHierarchy[minimum]
}
