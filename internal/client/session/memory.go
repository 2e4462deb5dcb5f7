package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
)

type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
	user    *models.User
	savedAt time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AccessToken(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, nil
}

func (s *MemoryStore) RefreshToken(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh, nil
}

func (s *MemoryStore) SetSession(_ context.Context, t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = t.Access
	if t.Refresh != "" {
		s.refresh = t.Refresh
	}
	s.savedAt = time.Now()
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh, s.user = "", "", nil
	s.savedAt = time.Time{}
	return nil
}

func (s *MemoryStore) IsAuthenticated(context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != "", nil
}

func (s *MemoryStore) User(context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, nil
	}
	u := *s.user
	return &u, nil
}

func (s *MemoryStore) SetUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return nil
	}
	cp := *u
	s.user = &cp
	return nil
}

func (s *MemoryStore) SavedAt(context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savedAt, nil
}
