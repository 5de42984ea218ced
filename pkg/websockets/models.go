package websockets

import "time"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeDonationUpdate carries the current state of a donation after a ledger change.
	MessageTypeDonationUpdate MessageType = "donationUpdate"
	// MessageTypeLeadUpdate carries the current funding state of a lead.
	MessageTypeLeadUpdate MessageType = "leadUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// DonationUpdatePayload is the payload for a donationUpdate message.
type DonationUpdatePayload struct {
	Event          string    `json:"event"`
	DonationID     string    `json:"donation_id"`
	Status         string    `json:"status"`
	Amount         int64     `json:"amount"`
	AllocatedTotal int64     `json:"allocated_total"`
	Remaining      int64     `json:"remaining"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// LeadUpdatePayload is the payload for a leadUpdate message.
type LeadUpdatePayload struct {
	Event         string    `json:"event"`
	LeadID        string    `json:"lead_id"`
	Status        string    `json:"status"`
	HelpRequested int64     `json:"help_requested"`
	HelpGiven     int64     `json:"help_given"`
	OccurredAt    time.Time `json:"occurred_at"`
}
