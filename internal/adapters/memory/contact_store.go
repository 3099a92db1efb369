package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"listing-service/internal/core/domain"
)

type ContactStore struct {
	mu    sync.RWMutex
	items map[string]domain.Contact
}

func NewContactStore() *ContactStore {
	return &ContactStore{items: make(map[string]domain.Contact)}
}

func (s *ContactStore) Create(_ context.Context, c *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.ID] = *c
	return nil
}

func (s *ContactStore) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	return &c, nil
}

func (s *ContactStore) FindAll(_ context.Context) ([]domain.Contact, error) {
	s.mu.RLock()
	out := make([]domain.Contact, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *ContactStore) UpdateStatus(_ context.Context, id string, status domain.ContactStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return domain.ErrContactNotFound
	}
	c.Status = status
	c.UpdatedAt = updatedAt
	s.items[id] = c
	return nil
}

func (s *ContactStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(s.items, id)
	return nil
}
