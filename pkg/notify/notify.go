// Package notify publishes ledger events to downstream notification channels.
// Publishing happens after a ledger mutation commits; failures never undo it.
package notify

import (
	"context"
	"time"
)

// EventType identifies what happened in the ledger.
type EventType string

const (
	DonationCreated   EventType = "donation.created"
	DonationVerified  EventType = "donation.verified"
	DonationFailed    EventType = "donation.failed"
	DonationAllocated EventType = "donation.allocated"
	AllocationRemoved EventType = "allocation.removed"
	LeadUpdated       EventType = "lead.updated"
)

// Event is the message placed on the notification queue.
type Event struct {
	Type       EventType `json:"type"`
	DonationId string    `json:"donation_id,omitempty"`
	LeadIds    []string  `json:"lead_ids,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	ActorId    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher defines the interface for a component that delivers ledger events.
type Publisher interface {
	// Publish enqueues an event for asynchronous delivery.
	Publish(ctx context.Context, event Event) error
}

// NoOpPublisher discards every event.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
