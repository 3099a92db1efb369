package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

const publishTimeout = 10 * time.Second

var routingKeys = map[domain.EventType]string{
	domain.EventPropertyCreated:      constants.RoutingKeyPropertyCreated,
	domain.EventPropertyUpdated:      constants.RoutingKeyPropertyUpdated,
	domain.EventPropertyDeleted:      constants.RoutingKeyPropertyDeleted,
	domain.EventInquiryCreated:       constants.RoutingKeyInquiryCreated,
	domain.EventInquiryStatusChanged: constants.RoutingKeyInquiryStatusChanged,
	domain.EventInquiryDeleted:       constants.RoutingKeyInquiryDeleted,
	domain.EventContactCreated:       constants.RoutingKeyContactCreated,
	domain.EventContactStatusChanged: constants.RoutingKeyContactStatusChanged,
	domain.EventContactDeleted:       constants.RoutingKeyContactDeleted,
}

// messagePublisher - то, что адаптеру нужно от Publisher
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// EventPublisherAdapter реализует port.EventPublisherPort поверх RabbitMQ.
type EventPublisherAdapter struct {
	producer messagePublisher
}

func NewEventPublisherAdapter(producer messagePublisher) (*EventPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &EventPublisherAdapter{producer: producer}, nil
}

func (a *EventPublisherAdapter) Publish(ctx context.Context, event domain.Event) error {
	routingKey, ok := routingKeys[event.Type]
	if !ok {
		return fmt.Errorf("rabbitmq adapter: no routing key for event type %q", event.Type)
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "EventPublisherAdapter",
		"routing_key": routingKey,
		"entity_id":   event.EntityID,
	})

	msg, err := buildPublishing(ctx, event)
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		logger.Error("Failed to publish event", err, nil)
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	logger.Debug("Event published", nil)
	return nil
}

func buildPublishing(ctx context.Context, event domain.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}
	return msg, nil
}

// NoopEventPublisher используется, когда брокер не настроен
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	contextkeys.LoggerFromContext(ctx).Debug("Event publishing disabled, dropping event", port.Fields{"event_type": event.Type})
	return nil
}
