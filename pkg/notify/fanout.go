package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/donation-ledger/pkg/storage"
	"github.com/chris/donation-ledger/pkg/websockets"
)

// StateReader is the read access the fan-out needs to render current state.
type StateReader interface {
	storage.DonationReader
	storage.LeadReader
}

// Fanout delivers ledger events to live websocket clients. Each event is
// rendered from the current stored state, so a late or duplicated event
// never shows clients stale numbers.
type Fanout struct {
	Store     StateReader
	Publisher websockets.Publisher
}

// NewFanout creates a Fanout.
func NewFanout(store StateReader, publisher websockets.Publisher) *Fanout {
	return &Fanout{Store: store, Publisher: publisher}
}

// Deliver publishes a donationUpdate for the event's donation and a leadUpdate
// for each referenced lead. Records deleted since the event are skipped.
func (f *Fanout) Deliver(ctx context.Context, event Event) error {
	var errs []error

	if event.DonationId != "" {
		donation, err := f.Store.GetDonation(ctx, event.DonationId)
		switch {
		case errors.Is(err, storage.ErrNotFound):
		case err != nil:
			errs = append(errs, fmt.Errorf("failed to load donation %s: %w", event.DonationId, err))
		default:
			msg := websockets.Message{
				Type: websockets.MessageTypeDonationUpdate,
				Payload: websockets.DonationUpdatePayload{
					Event:          string(event.Type),
					DonationID:     donation.Id,
					Status:         string(donation.Status),
					Amount:         donation.Amount,
					AllocatedTotal: donation.AllocatedTotal,
					Remaining:      donation.Remaining(),
					OccurredAt:     event.OccurredAt,
				},
			}
			if err := f.Publisher.Publish(ctx, msg); err != nil {
				errs = append(errs, fmt.Errorf("failed to publish donation update: %w", err))
			}
		}
	}

	for _, leadID := range event.LeadIds {
		lead, err := f.Store.GetLead(ctx, leadID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			continue
		case err != nil:
			errs = append(errs, fmt.Errorf("failed to load lead %s: %w", leadID, err))
			continue
		}
		msg := websockets.Message{
			Type: websockets.MessageTypeLeadUpdate,
			Payload: websockets.LeadUpdatePayload{
				Event:         string(event.Type),
				LeadID:        lead.Id,
				Status:        string(lead.Status),
				HelpRequested: lead.HelpRequested,
				HelpGiven:     lead.HelpGiven,
				OccurredAt:    event.OccurredAt,
			},
		}
		if err := f.Publisher.Publish(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("failed to publish lead update: %w", err))
		}
	}

	return errors.Join(errs...)
}

// DirectPublisher delivers events synchronously through a Fanout. It stands in
// for the queue when the service runs without SQS.
type DirectPublisher struct {
	Fanout *Fanout
}

// Publish delivers the event immediately.
func (p *DirectPublisher) Publish(ctx context.Context, event Event) error {
	return p.Fanout.Deliver(ctx, event)
}
