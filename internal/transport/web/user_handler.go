package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/service"
)

// setAuthCookies installs the session cookies: the access token (HttpOnly)
// and the CSRF token readable by the frontend / Installe les cookies de
// session : le token d'accès (HttpOnly) et le token CSRF lisible par le front
func (h *Handler) setAuthCookies(w http.ResponseWriter, token string) {
	conf := h.container.Config.Auth

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     conf.CookiePath,
		MaxAge:   int(conf.AccessTokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   conf.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Domain:   conf.CookieDomain,
	})

	csrfToken, err := newCSRFToken()
	if err != nil {
		slog.Error("failed to generate CSRF token", "err", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Value:    csrfToken,
		Path:     conf.CookiePath,
		MaxAge:   int(conf.AccessTokenDuration.Seconds()),
		HttpOnly: false, // Must be false so JavaScript can read it to send in headers
		Secure:   conf.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Domain:   conf.CookieDomain,
	})
}

// clearAuthCookies removes the session cookies / Retire les cookies de session
func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	conf := h.container.Config.Auth

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     conf.CookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   conf.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Domain:   conf.CookieDomain,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Value:    "",
		Path:     conf.CookiePath,
		MaxAge:   -1,
		HttpOnly: false,
		Secure:   conf.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Domain:   conf.CookieDomain,
	})
}

// Login handles user authentication / Gère l'authentification de l'utilisateur
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.container.AuthSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			ErrorResponse(w, "invalid credentials", http.StatusUnauthorized)
		case errors.Is(err, service.ErrAccountSuspended):
			ErrorResponse(w, "account suspended", http.StatusForbidden)
		default:
			slog.Error("login failed", "err", err, "email", req.Email)
			ErrorResponse(w, "authentication failed", http.StatusInternalServerError)
		}
		return
	}

	h.setAuthCookies(w, token)

	jsonResponse(w, dto.TokenResponse{Token: token, User: dto.UserToDTO(user)})
}

// Register handles new user registration / Gère l'inscription des utilisateurs
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.container.AuthSvc.Register(r.Context(), req)
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.setAuthCookies(w, token)

	createdResponse(w, dto.TokenResponse{Token: token, User: dto.UserToDTO(user)})
}

// Logout clears the session cookies. Tokens are stateless so an API client
// simply forgets its copy / Vide les cookies de session, les tokens étant
// sans état un client API oublie simplement sa copie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)

	jsonResponse(w, map[string]string{
		"message": "Logged out successfully",
	})
}

// Me returns current user details / Retourne les détails de l'utilisateur courant
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	jsonResponse(w, dto.UserToDTO(user))
}

// UpdateProfile edits the signed-in account's profile / Édite le profil du compte connecté
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.container.UserSvc.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(w, dto.UserToDTO(updated))
}

// ChangePassword changes the signed-in account's password / Change le mot de passe du compte connecté
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.container.UserSvc.ChangePassword(r.Context(), user.ID, req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ErrorResponse(w, "current password is incorrect", http.StatusUnauthorized)
			return
		}
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(w, map[string]string{
		"message": "Password changed successfully",
	})
}
