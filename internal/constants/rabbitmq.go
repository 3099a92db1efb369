package constants

// Обменник доменных событий
const (
	ListingEventsExchange     = "listing_events_exchange"
	ListingEventsExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyPropertyCreated      = "listing.property.created"
	RoutingKeyPropertyUpdated      = "listing.property.updated"
	RoutingKeyPropertyDeleted      = "listing.property.deleted"
	RoutingKeyInquiryCreated       = "listing.inquiry.created"
	RoutingKeyInquiryStatusChanged = "listing.inquiry.status_changed"
	RoutingKeyInquiryDeleted       = "listing.inquiry.deleted"
	RoutingKeyContactCreated       = "listing.contact.created"
	RoutingKeyContactStatusChanged = "listing.contact.status_changed"
	RoutingKeyContactDeleted       = "listing.contact.deleted"
)
