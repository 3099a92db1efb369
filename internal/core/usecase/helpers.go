package usecase

import (
	"context"
	"errors"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// storeErr пропускает доменные ошибки как есть, остальные превращает в StoreError
func storeErr(op string, err error) error {
	var vErr *domain.ValidationError
	var sErr *domain.StoreError
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.As(err, &vErr),
		errors.As(err, &sErr):
		return err
	}
	return domain.NewStoreError(op, err)
}

// publish отправляет событие после успешной записи. Сбой шины не отменяет записанное
// и попадает в лог.
func publish(ctx context.Context, events port.EventPublisherPort, logger port.LoggerPort, event domain.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish domain event", err, port.Fields{"event_type": event.Type, "entity_id": event.EntityID})
	}
}
