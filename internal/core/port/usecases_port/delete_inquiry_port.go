package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type DeleteInquiryUseCase interface {
	Execute(ctx context.Context, principal domain.Principal, id string) error
}
