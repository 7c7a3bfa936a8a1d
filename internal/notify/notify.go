// Package notify describes storefront events emitted after successful writes.
package notify

import (
	"context"
	"time"
)

// Event types
const (
	TypeOrderCreated   = "order.created"
	TypeBookingCreated = "booking.created"
	TypeContactCreated = "contact.created"
)

// Event is the payload sent from API -> SQS -> worker.
type Event struct {
	Type          string    `json:"type"`
	EntityID      string    `json:"entity_id"`
	Reference     string    `json:"reference,omitempty"` // orderNumber / bookingNumber
	Amount        float64   `json:"amount,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// Notifier delivers events. Implementations must not retry.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Nop drops every event. Used when no queue is configured.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }
