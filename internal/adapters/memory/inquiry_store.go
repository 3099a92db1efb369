package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"listing-service/internal/core/domain"
)

type InquiryStore struct {
	mu    sync.RWMutex
	items map[string]domain.Inquiry
}

func NewInquiryStore() *InquiryStore {
	return &InquiryStore{items: make(map[string]domain.Inquiry)}
}

func (s *InquiryStore) Create(_ context.Context, inq *domain.Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[inq.ID] = *inq
	return nil
}

func (s *InquiryStore) FindByID(_ context.Context, id string) (*domain.Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inq, ok := s.items[id]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	return &inq, nil
}

func (s *InquiryStore) FindByProperties(_ context.Context, propertyIDs []string) ([]domain.Inquiry, error) {
	wanted := make(map[string]struct{}, len(propertyIDs))
	for _, id := range propertyIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	out := make([]domain.Inquiry, 0)
	for _, inq := range s.items {
		if _, ok := wanted[inq.PropertyID]; ok {
			out = append(out, inq)
		}
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

func (s *InquiryStore) UpdateStatus(_ context.Context, id string, status domain.InquiryStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inq, ok := s.items[id]
	if !ok {
		return domain.ErrInquiryNotFound
	}
	inq.Status = status
	inq.UpdatedAt = updatedAt
	s.items[id] = inq
	return nil
}

func (s *InquiryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrInquiryNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *InquiryStore) DeleteByProperty(_ context.Context, propertyID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, inq := range s.items {
		if inq.PropertyID == propertyID {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}
