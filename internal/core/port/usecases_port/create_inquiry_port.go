package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type CreateInquiryUseCase interface {
	Execute(ctx context.Context, propertyID string, input domain.InquiryInput) (*domain.Inquiry, error)
}
