package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
)

// ErrPartialSession rejects a session carrying a token without its account or
// the reverse. The pair travels together or not at all / Rejette une session
// portant un token sans son compte ou l'inverse
var ErrPartialSession = errors.New("session needs both token and user, or neither")

// Session is the persisted sign-in state / État de connexion persisté
type Session struct {
	Token string            `json:"token,omitempty"`
	User  *dto.UserResponse `json:"user,omitempty"`
}

// IsAuthenticated reports whether the session carries a sign-in.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// DomainUser projects the session account for guard checks. Anonymous
// sessions project to nil, which every guard sends to the login page /
// Projette le compte de la session pour les gardes, nil si anonyme
func (s Session) DomainUser() *domain.User {
	if !s.IsAuthenticated() {
		return nil
	}
	return &domain.User{
		ID:       s.User.ID,
		Username: s.User.Username,
		Email:    s.User.Email,
		Role:     domain.UserRole(s.User.Role),
		Status:   domain.UserStatus(s.User.Status),
	}
}

func (s Session) validate() error {
	if (s.Token == "") != (s.User == nil) {
		return ErrPartialSession
	}
	return nil
}

// SessionStore persists the session as a JSON file / Persiste la session dans un fichier JSON
type SessionStore struct {
	path string

	mu      sync.Mutex
	current Session
}

// NewSessionStore creates a store backed by path / Crée un store adossé à path
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load reads the persisted session. A missing or corrupt file is an anonymous
// session, not an error: a client must always be able to start / Lit la
// session persistée, fichier absent ou corrompu vaut session anonyme
func (s *SessionStore) Load() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.current = Session{}
		return s.current
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil || session.validate() != nil {
		s.current = Session{}
		return s.current
	}

	s.current = session
	return s.current
}

// Current returns the in-memory session / Retourne la session en mémoire
func (s *SessionStore) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Save persists a sign-in. The token and its account are written atomically /
// Persiste une connexion, le token et son compte sont écrits ensemble
func (s *SessionStore) Save(session Session) error {
	if err := session.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	s.current = session
	return nil
}

// Clear signs out: the file goes away with the in-memory pair / Déconnecte,
// le fichier disparaît avec la paire en mémoire
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
