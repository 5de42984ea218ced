package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/donation-ledger/pkg/metrics"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
)

// Discrepancy is a lead whose HelpGiven disagrees with the allocation ledger.
type Discrepancy struct {
	LeadId   string `json:"leadId"`
	Recorded int64  `json:"recorded"`
	Expected int64  `json:"expected"`
	// Repaired is set when HelpGiven was overwritten with Expected.
	Repaired bool `json:"repaired"`
	// Missing marks allocations that reference a lead that no longer exists.
	Missing bool `json:"missing,omitempty"`
}

// Reconcile recomputes every lead's HelpGiven from the donations' allocations.
// Unless dryRun is set each mismatch is repaired with a version-guarded write; a lead
// that changed since it was read is left alone and reported unrepaired.
func (s *Service) Reconcile(ctx context.Context, dryRun bool, actor models.Actor) (found []Discrepancy, err error) {
	defer func() { metrics.Observe("reconcile", err, false) }()

	// Leads are read before donations. An allocation committed in between bumps the
	// lead's version, so the guarded repair below cannot overwrite it.
	leads, err := s.store.ListLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list leads: %v", ErrPersistence, err)
	}
	donations, err := s.store.ListDonations(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list donations: %v", ErrPersistence, err)
	}

	expected := make(map[string]int64, len(leads))
	order := make([]string, 0)
	for _, d := range donations {
		for _, a := range d.Allocations {
			if _, seen := expected[a.LeadId]; !seen {
				order = append(order, a.LeadId)
			}
			expected[a.LeadId] += a.Amount
		}
	}

	known := make(map[string]bool, len(leads))
	found = []Discrepancy{}
	for _, lead := range leads {
		known[lead.Id] = true
		want := expected[lead.Id]
		if lead.HelpGiven == want {
			continue
		}

		d := Discrepancy{LeadId: lead.Id, Recorded: lead.HelpGiven, Expected: want}
		if !dryRun {
			err := s.store.SetHelpGiven(ctx, lead.Id, lead.Version, want)
			switch {
			case err == nil:
				d.Repaired = true
				s.record(ctx, actor, "Lead HelpGiven Reconciled", map[string]any{
					"leadId": lead.Id,
					"changes": map[string]any{
						"helpGiven": map[string]any{"from": lead.HelpGiven, "to": want},
					},
				})
			case errors.Is(err, storage.ErrConflict), errors.Is(err, storage.ErrNotFound):
				s.logger.Warn("lead changed during reconciliation, skipping repair", "lead_id", lead.Id)
			default:
				return nil, fmt.Errorf("%w: failed to repair lead %s: %v", ErrPersistence, lead.Id, err)
			}
		}
		found = append(found, d)
	}

	for _, leadID := range order {
		if !known[leadID] {
			found = append(found, Discrepancy{LeadId: leadID, Expected: expected[leadID], Missing: true})
		}
	}

	metrics.ReconciliationDiscrepancies.Set(float64(len(found)))
	if len(found) > 0 {
		s.logger.Warn("reconciliation found discrepancies", "count", len(found), "dry_run", dryRun)
	}

	return found, nil
}
