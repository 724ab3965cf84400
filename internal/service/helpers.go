package service

import (
	"net/mail"
	"strings"
	"unicode"
)

// isStrongPassword validates that a password meets security requirements:
//   - At least 8 characters long
//   - Maximum 72 bytes (bcrypt limitation)
//   - Contains at least one uppercase letter
//   - Contains at least one lowercase letter
//   - Contains at least one digit
//   - Contains at least one special character
//
// Returns true if the password meets all requirements.
func isStrongPassword(password string) bool {
	// Check length constraints
	if len(password) < 8 {
		return false
	}

	// bcrypt has a maximum password length of 72 bytes
	if len([]byte(password)) > 72 {
		return false
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasDigit   bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}

// isValidEmail validates an email address format.
// It checks:
//   - Valid RFC 5322 format using net/mail.ParseAddress
//   - Maximum length of 254 characters (RFC 5321)
//   - Non-empty string
//
// Returns true if the email is valid.
func isValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}

	// Trim whitespace
	email = strings.TrimSpace(email)

	// Use standard library to validate email format
	_, err := mail.ParseAddress(email)
	return err == nil
}

// isValidUsername keeps display names printable and short enough for listing
// cards / Garde les pseudos affichables et assez courts pour les cartes
func isValidUsername(username string) bool {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	for _, char := range username {
		if !unicode.IsPrint(char) {
			return false
		}
	}
	return true
}

// computePages is the ceiling division used by every paginated listing /
// Division au plafond utilisée par toutes les listes paginées
func computePages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
