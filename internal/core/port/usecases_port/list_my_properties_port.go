package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type ListMyPropertiesUseCase interface {
	Execute(ctx context.Context, principal domain.Principal) ([]domain.PropertyView, error)
}
