package storage

import (
	"context"
	"time"

	"github.com/chris/donation-ledger/pkg/models"
)

// DonationReader defines the interface for reading donation data.
type DonationReader interface {
	// GetDonation retrieves a donation by its ID.
	GetDonation(ctx context.Context, donationID string) (*models.Donation, error)

	// ListDonations retrieves donations, optionally filtered by status. An empty status lists all.
	ListDonations(ctx context.Context, status models.DonationStatus) ([]models.Donation, error)
}

// StatusChange describes a guarded donation status transition.
type StatusChange struct {
	DonationId string
	From       models.DonationStatus
	To         models.DonationStatus
	ActorId    string
	At         time.Time
}

// DonationManager defines the interface for creating donations and moving them between verification states.
type DonationManager interface {
	// CreateDonation stores a new donation.
	CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error)

	// TransitionDonation changes a donation's status only if it is currently change.From.
	// It returns ErrConflict when the donation is in another state.
	TransitionDonation(ctx context.Context, change StatusChange) error

	// RecordPayment stores the gateway transaction id on a donation awaiting verification.
	RecordPayment(ctx context.Context, donationID, transactionID string) error
}

// DonationStore combines the reader and manager interfaces.
type DonationStore interface {
	DonationReader
	DonationManager
}
