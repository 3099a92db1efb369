package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type DeleteInquiryUseCase struct {
	properties port.PropertyStoragePort
	inquiries  port.InquiryStoragePort
	guard      *access.Guard
	events     port.EventPublisherPort
}

func NewDeleteInquiryUseCase(properties port.PropertyStoragePort, inquiries port.InquiryStoragePort, guard *access.Guard, events port.EventPublisherPort) *DeleteInquiryUseCase {
	return &DeleteInquiryUseCase{properties: properties, inquiries: inquiries, guard: guard, events: events}
}

func (uc *DeleteInquiryUseCase) Execute(ctx context.Context, principal domain.Principal, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteInquiry", "inquiry_id": id, "user_id": principal.UserID})

	_, res, err := loadInquiry(ctx, uc.properties, uc.inquiries, id)
	if err != nil {
		ucLogger.Error("Storage failed to find inquiry", err, nil)
		return err
	}

	decision := uc.guard.Decide(principal, access.ActionDelete, res)
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return err
	}

	if err := uc.inquiries.Delete(ctx, id); err != nil {
		ucLogger.Error("Storage failed to delete inquiry", err, nil)
		return storeErr("delete inquiry", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventInquiryDeleted, id, principal.UserID, nil))

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
