package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestSessionStoreRoundTrip(t *testing.T) {
	path := sessionPath(t)
	store := NewSessionStore(path)

	session := Session{
		Token: "token-123",
		User:  &dto.UserResponse{ID: "u-1", Username: "amadou", Email: "amadou@example.com", Role: "auteur", Status: "actif"},
	}
	require.NoError(t, store.Save(session))

	// A fresh store reads the same pair back / Un nouveau store relit la même paire
	restored := NewSessionStore(path).Load()
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "token-123", restored.Token)
	require.NotNil(t, restored.User)
	assert.Equal(t, "amadou", restored.User.Username)
}

func TestSessionStoreRejectsPartialSession(t *testing.T) {
	store := NewSessionStore(sessionPath(t))

	err := store.Save(Session{Token: "token-without-user"})
	assert.ErrorIs(t, err, ErrPartialSession)

	err = store.Save(Session{User: &dto.UserResponse{ID: "u-1"}})
	assert.ErrorIs(t, err, ErrPartialSession)

	// The empty pair is a valid signed-out state / La paire vide est un état déconnecté valide
	assert.NoError(t, store.Save(Session{}))
}

func TestSessionStoreMissingFileIsAnonymous(t *testing.T) {
	store := NewSessionStore(sessionPath(t))

	session := store.Load()
	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.DomainUser())
}

func TestSessionStoreCorruptFileIsAnonymous(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	session := NewSessionStore(path).Load()
	assert.False(t, session.IsAuthenticated())
}

func TestSessionStorePartialFileIsAnonymous(t *testing.T) {
	path := sessionPath(t)
	// A token alone on disk must not restore as a half session / Un token
	// seul sur disque ne doit pas se restaurer en demi-session
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"orphan"}`), 0o600))

	session := NewSessionStore(path).Load()
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token)
}

func TestSessionStoreClear(t *testing.T) {
	path := sessionPath(t)
	store := NewSessionStore(path)

	require.NoError(t, store.Save(Session{
		Token: "token-123",
		User:  &dto.UserResponse{ID: "u-1", Username: "amadou"},
	}))
	require.NoError(t, store.Clear())

	assert.False(t, store.Current().IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice stays quiet / Effacer deux fois reste silencieux
	assert.NoError(t, store.Clear())
}

func TestSessionDomainUser(t *testing.T) {
	session := Session{
		Token: "token-123",
		User:  &dto.UserResponse{ID: "u-1", Username: "amadou", Email: "a@example.com", Role: "agent", Status: "actif"},
	}

	u := session.DomainUser()
	require.NotNil(t, u)
	assert.Equal(t, domain.RoleAgent, u.Role)
	assert.Equal(t, domain.StatusActif, u.Status)

	// The projection feeds the guards directly / La projection alimente directement les gardes
	assert.True(t, domain.GuardAgent.Check(u).Allowed)
	assert.False(t, domain.GuardAdmin.Check(u).Allowed)
}
