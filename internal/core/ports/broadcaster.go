package ports

import (
	"dispatch/internal/core/domain/model/kernel"
)

// Event names published to the realtime surface.
const (
	EventDeliveryCreated  = "delivery.created"
	EventDeliveryAssigned = "delivery.assigned"
	EventDeliveryStatus   = "delivery.status_changed"
	EventCourierLocation  = "courier.location"
	EventCourierStatus    = "courier.status_changed"
)

// Broadcaster pushes events to realtime subscribers of a business. Publishing
// is fire-and-forget: implementations drop events for slow consumers rather
// than block the publishing operation.
type Broadcaster interface {
	Publish(businessID kernel.UUID, event string, payload any)
}
