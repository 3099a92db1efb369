package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type ListPropertyInquiriesUseCase interface {
	Execute(ctx context.Context, principal domain.Principal, propertyID string) ([]domain.Inquiry, error)
}
