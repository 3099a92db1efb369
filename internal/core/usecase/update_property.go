package usecase

import (
	"context"
	"errors"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
)

type UpdatePropertyUseCase struct {
	properties port.PropertyStoragePort
	guard      *access.Guard
	events     port.EventPublisherPort
	executor   *query.Executor
}

func NewUpdatePropertyUseCase(properties port.PropertyStoragePort, guard *access.Guard, events port.EventPublisherPort, executor *query.Executor) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{properties: properties, guard: guard, events: events, executor: executor}
}

// Execute применяет частичное обновление. Владелец, id и временные метки
// не входят в domain.PropertyPatch, поэтому клиент не может их изменить.
func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, principal domain.Principal, id string, patch domain.PropertyPatch) (*domain.PropertyView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateProperty", "property_id": id, "user_id": principal.UserID})

	ucLogger.Info("Use case started", nil)

	current, res, err := loadProperty(ctx, uc.properties, id)
	if err != nil {
		ucLogger.Error("Storage failed to find property", err, nil)
		return nil, err
	}

	decision := uc.guard.Decide(principal, access.ActionUpdate, res)
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return nil, err
	}

	next, err := current.Apply(patch, time.Now())
	if err != nil {
		ucLogger.Warn("Update rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.properties.Update(ctx, next); err != nil {
		ucLogger.Error("Storage failed to update property", err, nil)
		return nil, storeErr("update property", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventPropertyUpdated, next.ID, principal.UserID, nil))

	ucLogger.Info("Use case finished successfully", nil)
	view := uc.executor.View(ctx, *next)
	return &view, nil
}

// loadProperty читает объявление и описывает его для Guard.
// Отсутствие записи не ошибка: решение о 404 принимает Guard.
func loadProperty(ctx context.Context, properties port.PropertyStoragePort, id string) (*domain.Property, access.Resource, error) {
	res := access.Resource{Kind: access.KindProperty, ID: id}
	p, err := properties.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			res.Missing = true
			return nil, res, nil
		}
		return nil, res, storeErr("find property", err)
	}
	res.OwnerID = p.OwnerID
	return p, res, nil
}
