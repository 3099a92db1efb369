package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type UpdateInquiryStatusUseCase interface {
	Execute(ctx context.Context, principal domain.Principal, id string, change domain.StatusChange[domain.InquiryStatus]) (*domain.Inquiry, error)
}
