package ledger

import (
	"context"
	"fmt"

	"github.com/chris/donation-ledger/pkg/models"
)

// Summary is the organization-wide financial overview.
type Summary struct {
	TotalDonated        int64 `json:"totalDonated"`
	TotalVerified       int64 `json:"totalVerified"`
	TotalAllocated      int64 `json:"totalAllocated"`
	UnallocatedVerified int64 `json:"unallocatedVerified"`
	PendingCount        int   `json:"pendingCount"`
	PendingAmount       int64 `json:"pendingAmount"`
	FailedCount         int   `json:"failedCount"`
	LeadCount           int   `json:"leadCount"`
	OpenLeadCount       int   `json:"openLeadCount"`
	TotalRequested      int64 `json:"totalRequested"`
	TotalHelpGiven      int64 `json:"totalHelpGiven"`
}

// Summary aggregates donation and lead totals. Failed donations count towards
// nothing but FailedCount.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	donations, err := s.store.ListDonations(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list donations: %v", ErrPersistence, err)
	}
	leads, err := s.store.ListLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list leads: %v", ErrPersistence, err)
	}

	sum := &Summary{}
	for _, d := range donations {
		switch d.Status {
		case models.PENDING_VERIFICATION:
			sum.PendingCount++
			sum.PendingAmount += d.Amount
			sum.TotalDonated += d.Amount
		case models.VERIFIED, models.ALLOCATED:
			sum.TotalDonated += d.Amount
			sum.TotalVerified += d.Amount
			sum.TotalAllocated += d.AllocatedTotal
			sum.UnallocatedVerified += d.Remaining()
		case models.FAILED:
			sum.FailedCount++
		}
	}

	for _, l := range leads {
		sum.LeadCount++
		if !l.IsClosed() && l.Status != models.LeadCancelled && l.Status != models.LeadComplete {
			sum.OpenLeadCount++
		}
		sum.TotalRequested += l.HelpRequested
		sum.TotalHelpGiven += l.HelpGiven
	}

	return sum, nil
}
