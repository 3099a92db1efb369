package memory

import (
	"context"
	"sync"

	"listing-service/internal/core/domain"
)

type UserDirectory struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserDirectory(users ...domain.User) *UserDirectory {
	d := &UserDirectory{users: make(map[string]domain.User, len(users))}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

// Put добавляет или заменяет пользователя
func (d *UserDirectory) Put(u domain.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = u
}

func (d *UserDirectory) FindSummaries(_ context.Context, ids []string) (map[string]domain.OwnerSummary, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]domain.OwnerSummary, len(ids))
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}
