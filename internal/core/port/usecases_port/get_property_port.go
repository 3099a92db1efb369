package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type GetPropertyUseCase interface {
	Execute(ctx context.Context, id string) (*domain.PropertyView, error)
}
