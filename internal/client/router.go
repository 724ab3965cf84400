package client

import (
	"strings"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// Route binds a navigation prefix to its guard / Lie un préfixe de navigation à son garde
type Route struct {
	Prefix string
	Guard  domain.Guard
}

// Router resolves navigation paths against the guard table. It decides, it
// never navigates: the caller applies the redirect / Résout les chemins de
// navigation contre la table des gardes, la décision sans la navigation
type Router struct {
	routes []Route
}

// NewRouter builds the platform navigation table. Longest prefix wins, so the
// publishing screens are listed before their public sections / Construit la
// table de navigation, le préfixe le plus long gagne
func NewRouter() *Router {
	return &Router{
		routes: []Route{
			{Prefix: "/admin", Guard: domain.GuardAdmin},
			{Prefix: "/articles/publier", Guard: domain.GuardAuthor},
			{Prefix: "/immobilier/publier", Guard: domain.GuardAgent},
			{Prefix: "/profil", Guard: domain.GuardAuthenticated},
			{Prefix: "/paiements", Guard: domain.GuardAuthenticated},
		},
	}
}

// matches reports whether path falls under prefix on a segment boundary.
func matches(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Resolve evaluates the guard covering path for an optional user. Public
// paths always admit / Évalue le garde couvrant le chemin, les chemins
// publics admettent toujours
func (r *Router) Resolve(path string, u *domain.User) domain.Decision {
	var best *Route
	for i := range r.routes {
		route := &r.routes[i]
		if !matches(path, route.Prefix) {
			continue
		}
		if best == nil || len(route.Prefix) > len(best.Prefix) {
			best = route
		}
	}
	if best == nil {
		return domain.Decision{Allowed: true}
	}
	return best.Guard.Check(u)
}
