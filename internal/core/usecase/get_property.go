package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
)

type GetPropertyUseCase struct {
	properties port.PropertyStoragePort
	executor   *query.Executor
}

func NewGetPropertyUseCase(properties port.PropertyStoragePort, executor *query.Executor) *GetPropertyUseCase {
	return &GetPropertyUseCase{properties: properties, executor: executor}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, id string) (*domain.PropertyView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetProperty", "property_id": id})

	p, err := uc.properties.FindByID(ctx, id)
	if err != nil {
		ucLogger.Warn("Property lookup failed", port.Fields{"error": err.Error()})
		return nil, storeErr("find property", err)
	}

	views, err := uc.executor.Embed(ctx, []domain.Property{*p})
	if err != nil {
		ucLogger.Error("Failed to embed owner", err, nil)
		return nil, err
	}
	return &views[0], nil
}
