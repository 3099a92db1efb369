package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// PropertyStoragePort - хранилище объявлений.
// Отсутствующая запись сообщается через domain.ErrPropertyNotFound.
type PropertyStoragePort interface {
	Create(ctx context.Context, p *domain.Property) error
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// Update перезаписывает изменяемые поля; OwnerID и CreatedAt хранилище не трогает.
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id string) error
	// FindWithFilters возвращает страницу и общее число совпадений по предикату.
	FindWithFilters(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, int, error)
}
