// Package memory is an in-process UserRepository for tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	accountdomain "github.com/ghuser/simplemarket/services/account/domain"
	"github.com/ghuser/simplemarket/services/account/domain/models"
	"github.com/ghuser/simplemarket/services/account/domain/repositories"
)

type Store struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
}

var _ repositories.UserRepository = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		byID:    make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *Store) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[u.Email]; taken {
		return accountdomain.ErrEmailTaken
	}
	s.byID[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, accountdomain.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, accountdomain.ErrUserNotFound
	}
	u := s.byID[id]
	return &u, nil
}
