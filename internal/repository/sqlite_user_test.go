package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Create schema / Crée le schéma
	schema := `
	PRAGMA foreign_keys = ON;

	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'visiteur',
		status TEXT NOT NULL DEFAULT 'actif',
		phone TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		author_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		author_name TEXT NOT NULL,
		views INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE properties (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		type TEXT NOT NULL,
		city TEXT NOT NULL,
		price INTEGER NOT NULL,
		surface INTEGER NOT NULL DEFAULT 0,
		rooms INTEGER NOT NULL DEFAULT 0,
		image_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'disponible',
		owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		owner_name TEXT NOT NULL,
		views INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		amount INTEGER NOT NULL,
		currency TEXT NOT NULL DEFAULT 'GNF',
		method TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'en_attente',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

func testUser(id, username, email string) *domain.User {
	return &domain.User{
		ID:       id,
		Username: username,
		Email:    email,
		Password: "hashedpassword123",
		Role:     domain.RoleVisiteur,
		Status:   domain.StatusActif,
	}
}

func TestSQLiteUserRepo_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	user := testUser("u-1", "amadou", "amadou@example.com")
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Failed to get created user: %v", err)
	}
	if stored.Email != "amadou@example.com" {
		t.Errorf("Expected email 'amadou@example.com', got '%s'", stored.Email)
	}
	if stored.Role != domain.RoleVisiteur {
		t.Errorf("Expected role 'visiteur', got '%s'", stored.Role)
	}

	// Duplicate email must surface ErrDup / L'email en double doit remonter ErrDup
	dup := testUser("u-2", "other", "amadou@example.com")
	err = repo.Create(context.Background(), dup)
	if !errors.Is(err, ErrDup) {
		t.Errorf("Expected ErrDup for duplicate email, got %v", err)
	}

	// Duplicate username too / Le nom d'utilisateur en double aussi
	dup2 := testUser("u-3", "amadou", "other@example.com")
	err = repo.Create(context.Background(), dup2)
	if !errors.Is(err, ErrDup) {
		t.Errorf("Expected ErrDup for duplicate username, got %v", err)
	}
}

func TestSQLiteUserRepo_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))

	user, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Failed to get user by ID: %v", err)
	}
	if user.Username != "amadou" {
		t.Errorf("Expected username 'amadou', got '%s'", user.Username)
	}

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord for non-existent ID, got %v", err)
	}
}

func TestSQLiteUserRepo_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))

	user, err := repo.GetByEmail(context.Background(), "amadou@example.com")
	if err != nil {
		t.Fatalf("Failed to get user by email: %v", err)
	}
	if user.ID != "u-1" {
		t.Errorf("Expected ID 'u-1', got '%s'", user.ID)
	}

	_, err = repo.GetByEmail(context.Background(), "notfound@example.com")
	if !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord for non-existent email, got %v", err)
	}
}

func TestSQLiteUserRepo_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))
	repo.Create(context.Background(), testUser("u-2", "binta", "binta@example.com"))
	agent := testUser("u-3", "cellou", "cellou@example.com")
	agent.Role = domain.RoleAgent
	repo.Create(context.Background(), agent)

	// No filter returns everyone / Sans filtre, tout le monde
	users, total, err := repo.List(context.Background(), "", "", 0, 10)
	if err != nil {
		t.Fatalf("Failed to list users: %v", err)
	}
	if len(users) != 3 || total != 3 {
		t.Errorf("Expected 3 users and total 3, got %d and %d", len(users), total)
	}

	// Search matches username or email / La recherche porte sur le nom ou l'email
	users, total, err = repo.List(context.Background(), "binta", "", 0, 10)
	if err != nil {
		t.Fatalf("Failed to search users: %v", err)
	}
	if len(users) != 1 || total != 1 {
		t.Errorf("Expected 1 match for 'binta', got %d (total %d)", len(users), total)
	}

	// Role filter / Filtre de rôle
	users, total, err = repo.List(context.Background(), "", "agent", 0, 10)
	if err != nil {
		t.Fatalf("Failed to filter users by role: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u-3" {
		t.Errorf("Expected only u-3 with role agent, got %d users", len(users))
	}
	if total != 1 {
		t.Errorf("Expected total 1, got %d", total)
	}

	// Pagination keeps the full count / La pagination garde le compte total
	users, total, err = repo.List(context.Background(), "", "", 1, 2)
	if err != nil {
		t.Fatalf("Failed to list users with offset: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("Expected 2 users with offset, got %d", len(users))
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
}

func TestSQLiteUserRepo_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))

	updated := testUser("u-1", "amadou_diallo", "amadou@example.com")
	updated.Phone = "+224620000000"
	updated.Country = "Guinée"
	updated.Bio = "Rédacteur"
	if err := repo.UpdateProfile(context.Background(), updated); err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), "u-1")
	if stored.Username != "amadou_diallo" {
		t.Errorf("Expected username 'amadou_diallo', got '%s'", stored.Username)
	}
	if stored.Phone != "+224620000000" {
		t.Errorf("Expected updated phone, got '%s'", stored.Phone)
	}

	missing := testUser("missing", "nobody", "nobody@example.com")
	if err := repo.UpdateProfile(context.Background(), missing); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord for non-existent user, got %v", err)
	}
}

func TestSQLiteUserRepo_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))

	if err := repo.UpdatePassword(context.Background(), "u-1", "newhashedpassword"); err != nil {
		t.Fatalf("Failed to update password: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), "u-1")
	if stored.Password != "newhashedpassword" {
		t.Errorf("Expected password 'newhashedpassword', got '%s'", stored.Password)
	}
}

func TestSQLiteUserRepo_UpdateStatusAndRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))

	if err := repo.UpdateStatus(context.Background(), "u-1", domain.StatusSuspendu); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}
	if err := repo.UpdateRole(context.Background(), "u-1", domain.RoleAuteur); err != nil {
		t.Fatalf("Failed to update role: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), "u-1")
	if stored.Status != domain.StatusSuspendu {
		t.Errorf("Expected status 'suspendu', got '%s'", stored.Status)
	}
	if stored.Role != domain.RoleAuteur {
		t.Errorf("Expected role 'auteur', got '%s'", stored.Role)
	}

	// Updating a missing user must not pass silently / Une mise à jour sur un
	// utilisateur manquant ne doit pas passer en silence
	if err := repo.UpdateRole(context.Background(), "missing", domain.RoleAdmin); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord, got %v", err)
	}
}

func TestSQLiteUserRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))

	if err := repo.Delete(context.Background(), "u-1"); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), "u-1"); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord after delete, got %v", err)
	}

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord for non-existent user, got %v", err)
	}
}

func TestSQLiteUserRepo_DeleteCascadesContent(t *testing.T) {
	db := setupTestDB(t)
	users := NewSQLiteUser(db)
	articles := NewSQLiteArticle(db)

	users.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))
	articles.Create(context.Background(), &domain.Article{
		ID:         "a-1",
		Title:      "Titre",
		Content:    "Contenu",
		Category:   "Actualité",
		AuthorID:   "u-1",
		AuthorName: "amadou",
	})

	if err := users.Delete(context.Background(), "u-1"); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	if _, err := articles.GetByID(context.Background(), "a-1"); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected article to be cascade-deleted, got %v", err)
	}
}

func TestSQLiteUserRepo_CountUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	count, err := repo.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 users, got %d", count)
	}

	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))
	repo.Create(context.Background(), testUser("u-2", "binta", "binta@example.com"))

	count, err = repo.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 users, got %d", count)
	}
}

func TestSQLiteUserRepo_TimestampsSetOnCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUser(db)

	before := time.Now().UTC().Add(-time.Second)
	repo.Create(context.Background(), testUser("u-1", "amadou", "amadou@example.com"))

	stored, _ := repo.GetByID(context.Background(), "u-1")
	if stored.CreatedAt.Before(before) {
		t.Errorf("Expected CreatedAt to be set on create, got %v", stored.CreatedAt)
	}
	if stored.UpdatedAt.Before(before) {
		t.Errorf("Expected UpdatedAt to be set on create, got %v", stored.UpdatedAt)
	}
}
