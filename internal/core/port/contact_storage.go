package port

import (
	"context"
	"time"

	"listing-service/internal/core/domain"
)

type ContactStoragePort interface {
	Create(ctx context.Context, c *domain.Contact) error
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	// FindAll возвращает все обращения, новые первыми.
	FindAll(ctx context.Context) ([]domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
