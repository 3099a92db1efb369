package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type CreateContactUseCase interface {
	Execute(ctx context.Context, input domain.ContactInput) (*domain.Contact, error)
}
