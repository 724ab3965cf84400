// Package auth issues and validates the platform's access tokens.
// A single HS256 token carries the account ID and role, there is no refresh
// flow: sessions last as long as the token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer identifies tokens minted by this service / Identifie les tokens émis par ce service
const tokenIssuer = "matrix"

// CustomClaims extends JWT claims with role / Étend les claims JWT avec le rôle
type CustomClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateToken creates a signed access token / Crée un token d'accès signé
func GenerateToken(userID, role, jwtKey string, duration time.Duration) (string, time.Time, error) {
	if len(jwtKey) < 32 {
		return "", time.Time{}, errors.New("JWT key too weak")
	}

	expiresAt := time.Now().Add(duration)
	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ValidateJWT validates JWT token / Valide le token JWT
func ValidateJWT(tokenStr, jwtKey string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing algorithm: %v", token.Header["alg"])
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		if claims.Issuer != tokenIssuer {
			return nil, errors.New("invalid issuer")
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
