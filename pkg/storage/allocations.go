package storage

import (
	"context"
	"time"

	"github.com/chris/donation-ledger/pkg/models"
)

// AllocationBatch is a set of allocations applied to one donation as a single unit.
type AllocationBatch struct {
	// BatchId identifies the batch; stores use it as an idempotency token.
	BatchId         string
	DonationId      string
	ExpectedVersion int64
	Allocations     []models.Allocation
	NewStatus       models.DonationStatus
	UpdatedAt       time.Time
}

// Total returns the sum of the batch's allocation amounts.
func (b *AllocationBatch) Total() int64 {
	var total int64
	for _, a := range b.Allocations {
		total += a.Amount
	}
	return total
}

// AllocationReversal removes a single allocation from a donation.
type AllocationReversal struct {
	DonationId      string
	ExpectedVersion int64
	Index           int
	Allocation      models.Allocation
	NewStatus       models.DonationStatus
	UpdatedAt       time.Time
}

// AllocationWriter defines the highly-privileged interface for moving funds between donations and leads.
// Each call must update the donation and every referenced lead atomically.
type AllocationWriter interface {
	// ApplyAllocation appends the batch to the donation and adds each amount to its lead's HelpGiven.
	// It returns ErrConflict if the donation changed since ExpectedVersion, ErrLeadClosed if a lead
	// is closed and ErrNotFound if a lead is missing.
	ApplyAllocation(ctx context.Context, batch AllocationBatch) error

	// RevertAllocation removes one allocation and subtracts its amount from the lead's HelpGiven.
	RevertAllocation(ctx context.Context, reversal AllocationReversal) error
}
