package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type UpdateContactStatusUseCase interface {
	Execute(ctx context.Context, principal domain.Principal, id string, change domain.StatusChange[domain.ContactStatus]) (*domain.Contact, error)
}
