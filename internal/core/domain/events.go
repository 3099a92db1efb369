package domain

import "time"

// EventType - тип доменного события, публикуемого после успешной записи
type EventType string

const (
	EventPropertyCreated      EventType = "property.created"
	EventPropertyUpdated      EventType = "property.updated"
	EventPropertyDeleted      EventType = "property.deleted"
	EventInquiryCreated       EventType = "inquiry.created"
	EventInquiryStatusChanged EventType = "inquiry.status_changed"
	EventInquiryDeleted       EventType = "inquiry.deleted"
	EventContactCreated       EventType = "contact.created"
	EventContactStatusChanged EventType = "contact.status_changed"
	EventContactDeleted       EventType = "contact.deleted"
)

type Event struct {
	Type       EventType         `json:"type"`
	EntityID   string            `json:"entity_id"`
	ActorID    string            `json:"actor_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewEvent(t EventType, entityID, actorID string, attrs map[string]string) Event {
	return Event{Type: t, EntityID: entityID, ActorID: actorID, Attributes: attrs, OccurredAt: time.Now().UTC()}
}
