package web

import (
	"context"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// ContextKey is a custom type used for creating context keys.
// Using a custom type for context keys helps prevent collisions between keys
// defined in different packages.
type ContextKey string

// ClaimsContextKey is the key used to store and retrieve JWT claims from a
// request's context. The Auth middleware uses this key to pass the
// authenticated user's claims to downstream HTTP handlers.
const ClaimsContextKey = ContextKey("claims")

// UserContextKey carries the authenticated account loaded from storage /
// Transporte le compte authentifié chargé depuis le stockage
const UserContextKey = ContextKey("user")

// cookieAuthContextKey records whether the token came from the session cookie,
// which decides if the CSRF check applies.
const cookieAuthContextKey = ContextKey("cookie_auth")

// CurrentUser extracts the authenticated account from the context / Extrait le
// compte authentifié du contexte
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}
