package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type CreatePropertyUseCase interface {
	Execute(ctx context.Context, principal domain.Principal, draft domain.PropertyDraft) (*domain.PropertyView, error)
}
