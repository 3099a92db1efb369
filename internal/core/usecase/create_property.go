package usecase

import (
	"context"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
)

type CreatePropertyUseCase struct {
	properties port.PropertyStoragePort
	guard      *access.Guard
	events     port.EventPublisherPort
	executor   *query.Executor
}

func NewCreatePropertyUseCase(properties port.PropertyStoragePort, guard *access.Guard, events port.EventPublisherPort, executor *query.Executor) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{properties: properties, guard: guard, events: events, executor: executor}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, principal domain.Principal, draft domain.PropertyDraft) (*domain.PropertyView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "CreateProperty", "user_id": principal.UserID})

	ucLogger.Info("Use case started", nil)

	decision := uc.guard.Decide(principal, access.ActionCreate, access.Resource{Kind: access.KindProperty})
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return nil, err
	}

	p, err := domain.NewProperty(draft, decision.Scope.OwnerID, time.Now())
	if err != nil {
		ucLogger.Warn("Property rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.properties.Create(ctx, p); err != nil {
		ucLogger.Error("Storage failed to create property", err, nil)
		return nil, storeErr("create property", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventPropertyCreated, p.ID, principal.UserID, map[string]string{
		"property_type": string(p.PropertyType),
		"status":        string(p.Status),
	}))

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": p.ID})
	view := uc.executor.View(ctx, *p)
	return &view, nil
}
