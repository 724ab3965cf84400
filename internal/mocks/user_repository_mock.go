package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository"
)

// MockUserRepository is an in-memory implementation of ports.UserRepository
// for testing / Implémentation en mémoire de ports.UserRepository pour les tests
type MockUserRepository struct {
	Users map[string]*domain.User

	// Mock behavior flags
	CreateError     error
	GetByIDError    error
	GetByEmailError error
	ListError       error

	// Call tracking
	CreateCalls     int
	GetByIDCalls    int
	GetByEmailCalls int
}

// NewMockUserRepository creates a new mock user repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.Users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repository.ErrDup
		}
	}

	clone := *user
	m.Users[user.ID] = &clone
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.GetByIDCalls++
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	user, exists := m.Users[id]
	if !exists {
		return nil, repository.ErrNoRecord
	}
	clone := *user
	return &clone, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.GetByEmailCalls++
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}

	for _, user := range m.Users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNoRecord
}

func (m *MockUserRepository) List(ctx context.Context, search, role string, offset, limit int) ([]*domain.User, int, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	matches := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		if search != "" &&
			!strings.Contains(strings.ToLower(user.Username), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(search)) {
			continue
		}
		if role != "" && string(user.Role) != role {
			continue
		}
		clone := *user
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	total := len(matches)
	if offset >= total {
		return []*domain.User{}, total, nil
	}
	end := min(offset+limit, total)
	return matches[offset:end], total, nil
}

func (m *MockUserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	users, _, err := m.List(ctx, "", "", 0, len(m.Users))
	return users, err
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	stored, exists := m.Users[user.ID]
	if !exists {
		return repository.ErrNoRecord
	}
	stored.Username = user.Username
	stored.Phone = user.Phone
	stored.Country = user.Country
	stored.Address = user.Address
	stored.AvatarURL = user.AvatarURL
	stored.Bio = user.Bio
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	user, exists := m.Users[id]
	if !exists {
		return repository.ErrNoRecord
	}
	user.Password = hashedPassword
	return nil
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	user, exists := m.Users[id]
	if !exists {
		return repository.ErrNoRecord
	}
	user.Status = status
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	user, exists := m.Users[id]
	if !exists {
		return repository.ErrNoRecord
	}
	user.Role = role
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if _, exists := m.Users[id]; !exists {
		return repository.ErrNoRecord
	}
	delete(m.Users, id)
	return nil
}
