package storage

import (
	"context"

	"github.com/chris/donation-ledger/pkg/models"
)

// LeadReader defines the interface for reading leads.
type LeadReader interface {
	GetLead(ctx context.Context, leadID string) (*models.Lead, error)
	ListLeads(ctx context.Context) ([]models.Lead, error)
}

// LeadManager defines the interface for writing leads.
// None of these methods touch HelpGiven except SetHelpGiven, which exists for reconciliation.
type LeadManager interface {
	CreateLead(ctx context.Context, lead *models.Lead) (*models.Lead, error)

	// UpdateLead replaces the editable fields of a lead, guarded by lead.Version.
	UpdateLead(ctx context.Context, lead *models.Lead) error

	// SetHelpGiven overwrites the HelpGiven aggregate, guarded by expectedVersion.
	SetHelpGiven(ctx context.Context, leadID string, expectedVersion, helpGiven int64) error
}

// LeadStore combines the reader and manager interfaces.
type LeadStore interface {
	LeadReader
	LeadManager
}
