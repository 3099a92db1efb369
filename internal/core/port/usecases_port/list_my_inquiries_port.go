package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type ListMyInquiriesUseCase interface {
	Execute(ctx context.Context, principal domain.Principal) ([]domain.InquiryView, error)
}
