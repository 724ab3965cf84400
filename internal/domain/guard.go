package domain

// Guard is a route access rule. It is a pure decision table shared by the
// server middleware and the client-side router: the same rule produces a 403
// on the API and a redirect in the navigation layer.
type Guard struct {
	Name       string
	Minimum    UserRole // Lowest role admitted / Rôle minimum admis
	RedirectTo string   // Where a denied visitor is sent / Destination en cas de refus
}

// The four access levels of the platform / Les quatre niveaux d'accès de la plateforme
var (
	// GuardAuthenticated admits any signed-in user.
	GuardAuthenticated = Guard{Name: "authenticated", Minimum: RoleVisiteur, RedirectTo: "/connexion"}
	// GuardAgent admits agents, authors and admins (marketplace publishing).
	GuardAgent = Guard{Name: "agent", Minimum: RoleAgent, RedirectTo: "/immobilier"}
	// GuardAuthor admits authors and admins (editorial publishing).
	GuardAuthor = Guard{Name: "author", Minimum: RoleAuteur, RedirectTo: "/profil"}
	// GuardAdmin admits admins only (back-office).
	GuardAdmin = Guard{Name: "admin", Minimum: RoleAdmin, RedirectTo: "/"}
)

// LoginPath is where unauthenticated visitors are sent, whatever the guard.
const LoginPath = "/connexion"

// Decision is the outcome of evaluating a guard / Résultat de l'évaluation d'un garde
type Decision struct {
	Allowed    bool
	RedirectTo string // Empty when allowed / Vide si l'accès est autorisé
}

// Check evaluates the guard for an optional user. A nil user is an anonymous
// visitor and is always sent to the login page.
func (g Guard) Check(u *User) Decision {
	if u == nil {
		return Decision{Allowed: false, RedirectTo: LoginPath}
	}
	if !RoleAtLeast(u.Role, g.Minimum) {
		return Decision{Allowed: false, RedirectTo: g.RedirectTo}
	}
	return Decision{Allowed: true}
}
