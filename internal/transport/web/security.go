package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

// newCSRFToken mints the random half of the double submit pair. The value is
// stored in a cookie the frontend can read and must come back in the
// X-CSRF-Token header on every cookie-authenticated mutation / Génère la
// moitié aléatoire de la paire double submit
func newCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// csrfTokensMatch compares the cookie and header halves in constant time /
// Compare les deux moitiés en temps constant
func csrfTokensMatch(cookie, header string) bool {
	if cookie == "" || header == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) == 1
}
