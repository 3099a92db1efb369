package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type ListContactsUseCase interface {
	Execute(ctx context.Context, principal domain.Principal) ([]domain.Contact, error)
}
