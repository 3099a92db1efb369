package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
)

type ListPropertiesUseCase struct {
	compiler *filter.Compiler
	executor *query.Executor
}

func NewListPropertiesUseCase(compiler *filter.Compiler, executor *query.Executor) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{compiler: compiler, executor: executor}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, params map[string]string) (*domain.PropertyPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListProperties", "params": params})

	ucLogger.Info("Use case started", nil)

	q, err := uc.compiler.Compile(params)
	if err != nil {
		ucLogger.Warn("Filter rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	page, err := uc.executor.Execute(ctx, q)
	if err != nil {
		ucLogger.Error("Query execution failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   page.TotalCount,
		"items_on_page": len(page.Items),
	})
	return page, nil
}
