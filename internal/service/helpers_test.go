package service

import (
	"strings"
	"testing"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets every rule", "Str0ngPass!", true},
		{"too short", "S0r!t", false},
		{"no uppercase", "str0ngpass!", false},
		{"no lowercase", "STR0NGPASS!", false},
		{"no digit", "StrongPass!", false},
		{"no special char", "Str0ngPass1", false},
		{"over bcrypt 72 byte cap", "Aa1!" + strings.Repeat("x", 70), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStrongPassword(tt.password); got != tt.want {
				t.Errorf("isStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"plain address", "binta@example.com", true},
		{"subdomain", "binta@mail.example.gn", true},
		{"empty", "", false},
		{"no at sign", "binta.example.com", false},
		{"over 254 chars", strings.Repeat("a", 250) + "@x.gn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidEmail(tt.email); got != tt.want {
				t.Errorf("isValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"simple name", "binta", true},
		{"accented name", "Fodé", true},
		{"minimum length", "abc", true},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 51), false},
		{"control character", "bin\x00ta", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidUsername(tt.username); got != tt.want {
				t.Errorf("isValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestComputePages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"exact fit", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"empty", 0, 10, 0},
		{"single item", 1, 10, 1},
		{"zero limit", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computePages(tt.total, tt.limit); got != tt.want {
				t.Errorf("computePages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}
