package port

import (
	"context"
	"time"

	"listing-service/internal/core/domain"
)

type InquiryStoragePort interface {
	Create(ctx context.Context, inq *domain.Inquiry) error
	FindByID(ctx context.Context, id string) (*domain.Inquiry, error)
	// FindByProperties возвращает запросы по набору объявлений, новые первыми.
	FindByProperties(ctx context.Context, propertyIDs []string) ([]domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByProperty(ctx context.Context, propertyID string) (int, error)
}
