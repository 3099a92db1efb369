package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type DeletePropertyUseCase struct {
	properties port.PropertyStoragePort
	inquiries  port.InquiryStoragePort
	guard      *access.Guard
	events     port.EventPublisherPort
}

func NewDeletePropertyUseCase(properties port.PropertyStoragePort, inquiries port.InquiryStoragePort, guard *access.Guard, events port.EventPublisherPort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{properties: properties, inquiries: inquiries, guard: guard, events: events}
}

// Execute удаляет объявление вместе с его запросами.
func (uc *DeletePropertyUseCase) Execute(ctx context.Context, principal domain.Principal, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteProperty", "property_id": id, "user_id": principal.UserID})

	ucLogger.Info("Use case started", nil)

	_, res, err := loadProperty(ctx, uc.properties, id)
	if err != nil {
		ucLogger.Error("Storage failed to find property", err, nil)
		return err
	}

	decision := uc.guard.Decide(principal, access.ActionDelete, res)
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return err
	}

	if err := uc.properties.Delete(ctx, decision.Scope.ResourceID); err != nil {
		ucLogger.Error("Storage failed to delete property", err, nil)
		return storeErr("delete property", err)
	}

	removed, err := uc.inquiries.DeleteByProperty(ctx, decision.Scope.ResourceID)
	if err != nil {
		ucLogger.Error("Storage failed to delete inquiries of property", err, nil)
		return storeErr("delete property inquiries", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventPropertyDeleted, id, principal.UserID, nil))

	ucLogger.Info("Use case finished successfully", port.Fields{"inquiries_removed": removed})
	return nil
}
