package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/lifecycle"
	"listing-service/internal/core/port"
)

type CreateInquiryUseCase struct {
	properties port.PropertyStoragePort
	inquiries  port.InquiryStoragePort
	guard      *access.Guard
	lifecycle  *lifecycle.Manager
	events     port.EventPublisherPort
}

func NewCreateInquiryUseCase(
	properties port.PropertyStoragePort,
	inquiries port.InquiryStoragePort,
	guard *access.Guard,
	manager *lifecycle.Manager,
	events port.EventPublisherPort,
) *CreateInquiryUseCase {
	return &CreateInquiryUseCase{properties: properties, inquiries: inquiries, guard: guard, lifecycle: manager, events: events}
}

// Execute создает запрос по существующему объявлению. Аутентификация не требуется.
func (uc *CreateInquiryUseCase) Execute(ctx context.Context, propertyID string, input domain.InquiryInput) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "CreateInquiry", "property_id": propertyID})

	ucLogger.Info("Use case started", nil)

	_, res, err := loadProperty(ctx, uc.properties, propertyID)
	if err != nil {
		ucLogger.Error("Storage failed to find property", err, nil)
		return nil, err
	}
	res.Kind = access.KindInquiry

	decision := uc.guard.Decide(domain.Anonymous, access.ActionCreate, res)
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Inquiry rejected", port.Fields{"reason": decision.Reason})
		return nil, err
	}

	inq, err := uc.lifecycle.NewInquiry(propertyID, input)
	if err != nil {
		ucLogger.Warn("Inquiry input rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.inquiries.Create(ctx, inq); err != nil {
		ucLogger.Error("Storage failed to create inquiry", err, nil)
		return nil, storeErr("create inquiry", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventInquiryCreated, inq.ID, "", map[string]string{
		"property_id": propertyID,
		"owner_id":    decision.Scope.OwnerID,
	}))

	ucLogger.Info("Use case finished successfully", port.Fields{"inquiry_id": inq.ID})
	return inq, nil
}
