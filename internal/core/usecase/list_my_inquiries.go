package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
)

type ListMyInquiriesUseCase struct {
	guard     *access.Guard
	executor  *query.Executor
	inquiries port.InquiryStoragePort
}

func NewListMyInquiriesUseCase(guard *access.Guard, executor *query.Executor, inquiries port.InquiryStoragePort) *ListMyInquiriesUseCase {
	return &ListMyInquiriesUseCase{guard: guard, executor: executor, inquiries: inquiries}
}

// Execute возвращает запросы по всем объявлениям субъекта с названием и фото объявления.
func (uc *ListMyInquiriesUseCase) Execute(ctx context.Context, principal domain.Principal) ([]domain.InquiryView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListMyInquiries", "user_id": principal.UserID})

	decision := uc.guard.Decide(principal, access.ActionReadOwned, access.Resource{Kind: access.KindInquiry})
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return nil, err
	}

	owned, err := uc.executor.ExecuteOwned(ctx, decision.Scope.OwnerID)
	if err != nil {
		ucLogger.Error("Failed to load owned properties", err, nil)
		return nil, err
	}

	views := make([]domain.InquiryView, 0)
	if len(owned) == 0 {
		return views, nil
	}

	summaries := make(map[string]domain.PropertySummary, len(owned))
	ids := make([]string, 0, len(owned))
	for _, p := range owned {
		summaries[p.ID] = p.Summary()
		ids = append(ids, p.ID)
	}

	inquiries, err := uc.inquiries.FindByProperties(ctx, ids)
	if err != nil {
		ucLogger.Error("Storage failed to find inquiries", err, nil)
		return nil, storeErr("find inquiries", err)
	}

	for _, inq := range inquiries {
		views = append(views, domain.InquiryView{Inquiry: inq, Property: summaries[inq.PropertyID]})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(views)})
	return views, nil
}
