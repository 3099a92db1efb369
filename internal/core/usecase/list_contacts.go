package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type ListContactsUseCase struct {
	contacts port.ContactStoragePort
	guard    *access.Guard
}

func NewListContactsUseCase(contacts port.ContactStoragePort, guard *access.Guard) *ListContactsUseCase {
	return &ListContactsUseCase{contacts: contacts, guard: guard}
}

func (uc *ListContactsUseCase) Execute(ctx context.Context, principal domain.Principal) ([]domain.Contact, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListContacts", "user_id": principal.UserID})

	decision := uc.guard.Decide(principal, access.ActionRead, access.Resource{Kind: access.KindContact})
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return nil, err
	}

	list, err := uc.contacts.FindAll(ctx)
	if err != nil {
		ucLogger.Error("Storage failed to list contacts", err, nil)
		return nil, storeErr("list contacts", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(list)})
	return list, nil
}
