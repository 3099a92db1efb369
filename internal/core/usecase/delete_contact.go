package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type DeleteContactUseCase struct {
	contacts port.ContactStoragePort
	guard    *access.Guard
	events   port.EventPublisherPort
}

func NewDeleteContactUseCase(contacts port.ContactStoragePort, guard *access.Guard, events port.EventPublisherPort) *DeleteContactUseCase {
	return &DeleteContactUseCase{contacts: contacts, guard: guard, events: events}
}

func (uc *DeleteContactUseCase) Execute(ctx context.Context, principal domain.Principal, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteContact", "contact_id": id, "user_id": principal.UserID})

	_, res, err := loadContact(ctx, uc.contacts, id)
	if err != nil {
		ucLogger.Error("Storage failed to find contact", err, nil)
		return err
	}

	decision := uc.guard.Decide(principal, access.ActionDelete, res)
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return err
	}

	if err := uc.contacts.Delete(ctx, id); err != nil {
		ucLogger.Error("Storage failed to delete contact", err, nil)
		return storeErr("delete contact", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventContactDeleted, id, principal.UserID, nil))

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
