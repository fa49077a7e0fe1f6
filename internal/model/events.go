package model

import "context"

// Event types published by the server.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
	EventProductApproved    = "product.approved"
)

// Event is a domain notification sent to external subscribers.
type Event struct {
	Type    string
	Payload any
}

// EventPublisher delivers domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
