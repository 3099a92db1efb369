package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
)

type capturedPublish struct {
	routingKey string
	msg        amqp.Publishing
	deadline   bool
}

type fakeProducer struct {
	calls []capturedPublish
	err   error
}

func (f *fakeProducer) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	_, hasDeadline := ctx.Deadline()
	f.calls = append(f.calls, capturedPublish{routingKey: routingKey, msg: msg, deadline: hasDeadline})
	return f.err
}

func TestEventPublisherAdapter_Publish(t *testing.T) {
	producer := &fakeProducer{}
	adapter, err := NewEventPublisherAdapter(producer)
	require.NoError(t, err)

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-42")
	event := domain.NewEvent(domain.EventInquiryCreated, "inq-1", "", map[string]string{"property_id": "p1"})
	require.NoError(t, adapter.Publish(ctx, event))

	require.Len(t, producer.calls, 1)
	call := producer.calls[0]
	assert.Equal(t, constants.RoutingKeyInquiryCreated, call.routingKey)
	assert.True(t, call.deadline)
	assert.Equal(t, "application/json", call.msg.ContentType)
	assert.Equal(t, amqp.Persistent, call.msg.DeliveryMode)
	assert.Equal(t, "trace-42", call.msg.Headers["x-trace-id"])

	var decoded domain.Event
	require.NoError(t, json.Unmarshal(call.msg.Body, &decoded))
	assert.Equal(t, domain.EventInquiryCreated, decoded.Type)
	assert.Equal(t, "p1", decoded.Attributes["property_id"])
}

func TestEventPublisherAdapter_Errors(t *testing.T) {
	_, err := NewEventPublisherAdapter(nil)
	assert.Error(t, err)

	adapter, _ := NewEventPublisherAdapter(&fakeProducer{err: errors.New("channel closed")})
	err = adapter.Publish(context.Background(), domain.NewEvent(domain.EventPropertyDeleted, "p1", "u1", nil))
	assert.ErrorContains(t, err, "channel closed")

	err = adapter.Publish(context.Background(), domain.Event{Type: "unknown"})
	assert.ErrorContains(t, err, "no routing key")
}

func TestEveryEventTypeHasRoutingKey(t *testing.T) {
	for _, et := range []domain.EventType{
		domain.EventPropertyCreated, domain.EventPropertyUpdated, domain.EventPropertyDeleted,
		domain.EventInquiryCreated, domain.EventInquiryStatusChanged, domain.EventInquiryDeleted,
		domain.EventContactCreated, domain.EventContactStatusChanged, domain.EventContactDeleted,
	} {
		assert.NotEmpty(t, routingKeys[et], et)
	}
}

func TestNoopEventPublisher(t *testing.T) {
	assert.NoError(t, NoopEventPublisher{}.Publish(context.Background(), domain.Event{Type: domain.EventContactCreated}))
}
