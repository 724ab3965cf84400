package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testJWTKey = "test-secret-key-32-characters-min!"

func TestGenerateToken(t *testing.T) {
	userID := "7b5f4c1e-9a8d-4e2f-b1c3-d4e5f6a7b8c9"

	token, expiresAt, err := GenerateToken(userID, "auteur", testJWTKey, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 59*time.Minute {
		t.Errorf("expiresAt %v not about one hour away", expiresAt)
	}

	claims, err := ValidateJWT(token, testJWTKey)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}

	if claims.Subject != userID {
		t.Errorf("Subject = %s, want %s", claims.Subject, userID)
	}

	if claims.Role != "auteur" {
		t.Errorf("Role = %s, want auteur", claims.Role)
	}

	if claims.Issuer != "matrix" {
		t.Errorf("Issuer = %s, want matrix", claims.Issuer)
	}
}

func TestGenerateToken_WeakKey(t *testing.T) {
	_, _, err := GenerateToken("u-1", "visiteur", "short-key", time.Hour)
	if err == nil {
		t.Fatal("GenerateToken() should reject a key shorter than 32 chars")
	}
	if !strings.Contains(err.Error(), "weak") {
		t.Errorf("error = %v, want weak key error", err)
	}
}

func TestValidateJWT_WrongKey(t *testing.T) {
	token, _, err := GenerateToken("u-1", "admin", testJWTKey, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = ValidateJWT(token, "another-secret-key-32-characters!!")
	if err == nil {
		t.Error("ValidateJWT() should reject a token signed with another key")
	}
}

func TestValidateJWT_Expired(t *testing.T) {
	token, _, err := GenerateToken("u-1", "agent", testJWTKey, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = ValidateJWT(token, testJWTKey)
	if err == nil {
		t.Error("ValidateJWT() should reject an expired token")
	}
}

func TestValidateJWT_Garbage(t *testing.T) {
	_, err := ValidateJWT("not-a-jwt", testJWTKey)
	if err == nil {
		t.Error("ValidateJWT() should reject a malformed token")
	}
}

func TestValidateJWT_WrongIssuer(t *testing.T) {
	// A well-signed token from another issuer must not be accepted / Un token
	// bien signé d'un autre émetteur ne doit pas être accepté
	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "someone-else",
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTKey))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	_, err = ValidateJWT(signed, testJWTKey)
	if err == nil {
		t.Error("ValidateJWT() should reject a foreign issuer")
	}
}

func TestValidateJWT_WrongAlgorithm(t *testing.T) {
	// Signature checks must stay on HMAC whatever the token header claims /
	// Les vérifications de signature doivent rester sur HMAC
	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "matrix",
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	_, err = ValidateJWT(signed, testJWTKey)
	if err == nil {
		t.Error("ValidateJWT() should reject a non-HMAC token")
	}
}
