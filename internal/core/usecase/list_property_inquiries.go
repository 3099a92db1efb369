package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type ListPropertyInquiriesUseCase struct {
	properties port.PropertyStoragePort
	inquiries  port.InquiryStoragePort
	guard      *access.Guard
}

func NewListPropertyInquiriesUseCase(properties port.PropertyStoragePort, inquiries port.InquiryStoragePort, guard *access.Guard) *ListPropertyInquiriesUseCase {
	return &ListPropertyInquiriesUseCase{properties: properties, inquiries: inquiries, guard: guard}
}

func (uc *ListPropertyInquiriesUseCase) Execute(ctx context.Context, principal domain.Principal, propertyID string) ([]domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListPropertyInquiries", "property_id": propertyID, "user_id": principal.UserID})

	_, res, err := loadProperty(ctx, uc.properties, propertyID)
	if err != nil {
		ucLogger.Error("Storage failed to find property", err, nil)
		return nil, err
	}
	res.Kind = access.KindInquiry

	decision := uc.guard.Decide(principal, access.ActionRead, res)
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return nil, err
	}

	list, err := uc.inquiries.FindByProperties(ctx, []string{propertyID})
	if err != nil {
		ucLogger.Error("Storage failed to find inquiries", err, nil)
		return nil, storeErr("find inquiries", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(list)})
	return list, nil
}
