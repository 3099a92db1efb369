package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type UpdatePropertyUseCase interface {
	Execute(ctx context.Context, principal domain.Principal, id string, patch domain.PropertyPatch) (*domain.PropertyView, error)
}
