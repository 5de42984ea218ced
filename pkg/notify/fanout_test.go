package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
	"github.com/chris/donation-ledger/pkg/storage/mocks"
	"github.com/chris/donation-ledger/pkg/websockets"
)

type capturePublisher struct {
	messages []websockets.Message
	err      error
}

func (p *capturePublisher) Publish(ctx context.Context, message websockets.Message) error {
	p.messages = append(p.messages, message)
	return p.err
}

func TestFanout_Deliver(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	event := Event{
		Type:       DonationAllocated,
		DonationId: "don-1",
		LeadIds:    []string{"lead-1", "lead-2"},
		Amount:     60000,
		OccurredAt: at,
	}
	donation := &models.Donation{Id: "don-1", Amount: 100000, AllocatedTotal: 60000, Status: models.VERIFIED}
	lead := &models.Lead{Id: "lead-1", Status: models.LeadPartial, HelpRequested: 50000, HelpGiven: 40000}

	t.Run("Renders Current State", func(t *testing.T) {
		store := mocks.NewApiStore(t)
		store.On("GetDonation", mock.Anything, "don-1").Return(donation, nil)
		store.On("GetLead", mock.Anything, "lead-1").Return(lead, nil)
		store.On("GetLead", mock.Anything, "lead-2").Return(nil, storage.ErrNotFound)
		pub := &capturePublisher{}

		err := NewFanout(store, pub).Deliver(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, pub.messages, 2)
		assert.Equal(t, websockets.MessageTypeDonationUpdate, pub.messages[0].Type)
		assert.Equal(t, websockets.DonationUpdatePayload{
			Event:          "donation.allocated",
			DonationID:     "don-1",
			Status:         "Verified",
			Amount:         100000,
			AllocatedTotal: 60000,
			Remaining:      40000,
			OccurredAt:     at,
		}, pub.messages[0].Payload)
		assert.Equal(t, websockets.MessageTypeLeadUpdate, pub.messages[1].Type)
		payload := pub.messages[1].Payload.(websockets.LeadUpdatePayload)
		assert.Equal(t, "lead-1", payload.LeadID)
		assert.Equal(t, int64(40000), payload.HelpGiven)
	})

	t.Run("Lead Only Event", func(t *testing.T) {
		store := mocks.NewApiStore(t)
		store.On("GetLead", mock.Anything, "lead-1").Return(lead, nil)
		pub := &capturePublisher{}

		err := NewFanout(store, pub).Deliver(context.Background(), Event{Type: LeadUpdated, LeadIds: []string{"lead-1"}})

		require.NoError(t, err)
		require.Len(t, pub.messages, 1)
		assert.Equal(t, websockets.MessageTypeLeadUpdate, pub.messages[0].Type)
	})

	t.Run("Errors Are Collected", func(t *testing.T) {
		store := mocks.NewApiStore(t)
		store.On("GetDonation", mock.Anything, "don-1").Return(nil, errors.New("timeout"))
		store.On("GetLead", mock.Anything, "lead-1").Return(lead, nil)
		store.On("GetLead", mock.Anything, "lead-2").Return(lead, nil)
		pub := &capturePublisher{err: errors.New("socket closed")}

		err := NewFanout(store, pub).Deliver(context.Background(), event)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load donation don-1")
		assert.Contains(t, err.Error(), "failed to publish lead update")
		assert.Len(t, pub.messages, 2)
	})

	t.Run("Direct Publisher", func(t *testing.T) {
		store := mocks.NewApiStore(t)
		store.On("GetDonation", mock.Anything, "don-1").Return(donation, nil)
		pub := &capturePublisher{}
		var publisher Publisher = &DirectPublisher{Fanout: NewFanout(store, pub)}

		err := publisher.Publish(context.Background(), Event{Type: DonationVerified, DonationId: "don-1"})

		require.NoError(t, err)
		assert.Len(t, pub.messages, 1)
	})
}
