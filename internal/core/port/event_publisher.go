package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// EventPublisherPort - отправка доменных событий во внешнюю шину.
type EventPublisherPort interface {
	Publish(ctx context.Context, event domain.Event) error
}
