package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"ROBOTICS-BOOK_BACK-END/internal/models"
)

// MemoryUserStore is an in-memory UserStore for tests and local development.
// The mutex gives it the same duplicate-insert atomicity as the Postgres
// unique index.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*models.User
	byEmail map[string]uuid.UUID
}

// NewMemoryUserStore creates an empty MemoryUserStore
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(s.byID[id]), nil
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(user), nil
}

func (s *MemoryUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}
	s.byID[user.ID] = copyUser(user)
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryUserStore) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.SoftwareBackground != nil {
		user.SoftwareBackground = *patch.SoftwareBackground
	}
	if patch.HardwareBackground != nil {
		user.HardwareBackground = *patch.HardwareBackground
	}
	if patch.Experience != nil {
		user.Experience = *patch.Experience
	}
	if patch.Interests != nil {
		user.Interests = append([]string(nil), (*patch.Interests)...)
	}
	return copyUser(user), nil
}

func copyUser(user *models.User) *models.User {
	clone := *user
	clone.Interests = append([]string(nil), user.Interests...)
	return &clone
}
