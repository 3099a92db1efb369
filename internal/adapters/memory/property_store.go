// Package memory - хранилище сущностей в памяти процесса (разработка и тесты).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"listing-service/internal/core/domain"
)

type PropertyStore struct {
	mu    sync.RWMutex
	items map[string]domain.Property
}

func NewPropertyStore() *PropertyStore {
	return &PropertyStore{items: make(map[string]domain.Property)}
}

func (s *PropertyStore) Create(_ context.Context, p *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.ID] = cloneProperty(*p)
	return nil
}

func (s *PropertyStore) FindByID(_ context.Context, id string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	out := cloneProperty(p)
	return &out, nil
}

func (s *PropertyStore) Update(_ context.Context, p *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[p.ID]
	if !ok {
		return domain.ErrPropertyNotFound
	}
	next := cloneProperty(*p)
	next.OwnerID = existing.OwnerID
	next.CreatedAt = existing.CreatedAt
	s.items[p.ID] = next
	return nil
}

func (s *PropertyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *PropertyStore) FindWithFilters(_ context.Context, q domain.PropertyQuery) ([]domain.Property, int, error) {
	// Caser хранит состояние, поэтому свой экземпляр на каждый вызов
	m := matcher{pred: q.Predicate, fold: cases.Fold()}

	s.mu.RLock()
	matched := make([]domain.Property, 0)
	for _, p := range s.items {
		if m.matches(p) {
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	sortProperties(matched, q.Sort)
	total := len(matched)

	skip := q.Pagination.Skip()
	if skip >= total {
		return []domain.Property{}, total, nil
	}
	end := total
	if q.Pagination.Limit > 0 && skip+q.Pagination.Limit < total {
		end = skip + q.Pagination.Limit
	}

	out := make([]domain.Property, 0, end-skip)
	for _, p := range matched[skip:end] {
		out = append(out, cloneProperty(p))
	}
	return out, total, nil
}

type matcher struct {
	pred domain.PropertyPredicate
	fold cases.Caser
}

func (m matcher) matches(p domain.Property) bool {
	pred := m.pred
	if pred.OwnerID != "" && p.OwnerID != pred.OwnerID {
		return false
	}
	if pred.PropertyType != nil && p.PropertyType != *pred.PropertyType {
		return false
	}
	if pred.Status != nil && p.Status != *pred.Status {
		return false
	}
	if pred.Price.Min != nil && p.Price < *pred.Price.Min {
		return false
	}
	if pred.Price.Max != nil && p.Price > *pred.Price.Max {
		return false
	}
	if pred.Bedrooms != nil && p.Features.Bedrooms != *pred.Bedrooms {
		return false
	}
	if pred.Bathrooms != nil && p.Features.Bathrooms != *pred.Bathrooms {
		return false
	}
	if pred.City != "" && !m.containsFold(p.Location.City, pred.City) {
		return false
	}
	if pred.State != "" && !m.containsFold(p.Location.State, pred.State) {
		return false
	}
	return true
}

// containsFold - поиск подстроки без учета регистра (Unicode case folding)
func (m matcher) containsFold(value, sub string) bool {
	return strings.Contains(m.fold.String(value), m.fold.String(sub))
}

// sortProperties задает полный порядок: при равенстве основного ключа
// решает id (UUIDv7 упорядочен по времени создания).
func sortProperties(items []domain.Property, key domain.SortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch key {
		case domain.SortOldest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		case domain.SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.ID < b.ID
		case domain.SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
			return a.ID < b.ID
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
	})
}

func cloneProperty(p domain.Property) domain.Property {
	p.Images = append([]string(nil), p.Images...)
	return p
}
