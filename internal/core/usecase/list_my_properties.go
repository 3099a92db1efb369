package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
)

type ListMyPropertiesUseCase struct {
	guard    *access.Guard
	executor *query.Executor
}

func NewListMyPropertiesUseCase(guard *access.Guard, executor *query.Executor) *ListMyPropertiesUseCase {
	return &ListMyPropertiesUseCase{guard: guard, executor: executor}
}

func (uc *ListMyPropertiesUseCase) Execute(ctx context.Context, principal domain.Principal) ([]domain.PropertyView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListMyProperties", "user_id": principal.UserID})

	decision := uc.guard.Decide(principal, access.ActionReadOwned, access.Resource{Kind: access.KindProperty})
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return nil, err
	}

	views, err := uc.executor.ExecuteOwned(ctx, decision.Scope.OwnerID)
	if err != nil {
		ucLogger.Error("Query execution failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(views)})
	return views, nil
}
