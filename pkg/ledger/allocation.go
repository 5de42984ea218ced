package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/donation-ledger/pkg/metrics"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/chris/donation-ledger/pkg/storage"
)

// Allocate splits part of a verified donation across leads.
//
// Duplicate lead ids are summed into one allocation. The donation moves to
// Allocated once its remaining balance reaches zero. The donation update and all
// HelpGiven increments commit together or not at all.
func (s *Service) Allocate(ctx context.Context, donationID string, targets []Target, actor models.Actor) (donation *models.Donation, err error) {
	defer func() { metrics.Observe("allocate", err, IsValidationError(err)) }()

	merged, err := MergeTargets(targets)
	if err != nil {
		return nil, err
	}
	total, err := Sum(merged)
	if err != nil {
		return nil, err
	}

	batchID := s.newID()
	for attempt := 0; ; attempt++ {
		donation, err = s.getDonation(ctx, donationID)
		if err != nil {
			return nil, err
		}
		if err := s.checkAllocatable(ctx, donation, merged, total); err != nil {
			return nil, err
		}

		now := s.now()
		allocations := make([]models.Allocation, len(merged))
		for i, t := range merged {
			allocations[i] = models.Allocation{
				Id:                  s.newID(),
				LeadId:              t.LeadId,
				Amount:              t.Amount,
				AllocatedByUserId:   actor.Id,
				AllocatedByUserName: actor.Name,
				AllocatedAt:         now,
			}
		}

		newStatus := models.VERIFIED
		if donation.Remaining() == total {
			newStatus = models.ALLOCATED
		}

		err = s.store.ApplyAllocation(ctx, storage.AllocationBatch{
			BatchId:         fmt.Sprintf("%s-%d", batchID, attempt),
			DonationId:      donation.Id,
			ExpectedVersion: donation.Version,
			Allocations:     allocations,
			NewStatus:       newStatus,
			UpdatedAt:       now,
		})
		if errors.Is(err, storage.ErrConflict) && attempt < s.maxRetries {
			metrics.AllocationConflicts.Inc()
			s.logger.Warn("allocation conflicted with a concurrent write, retrying", "donation_id", donationID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return nil, fmt.Errorf("%w: donation %s kept changing during allocation", ErrPersistence, donationID)
			}
			return nil, storageError(err, "allocation to donation "+donationID)
		}

		donation.Allocations = append(donation.Allocations, allocations...)
		donation.AllocatedTotal += total
		donation.Status = newStatus
		donation.Version++
		donation.UpdatedAt = now
		break
	}

	metrics.AllocatedAmount.Add(float64(total))

	summary := make([]map[string]any, len(merged))
	leadIDs := make([]string, len(merged))
	for i, t := range merged {
		summary[i] = map[string]any{"leadId": t.LeadId, "amount": t.Amount}
		leadIDs[i] = t.LeadId
	}
	s.record(ctx, actor, "Donation Allocated", map[string]any{
		"donationId":  donation.Id,
		"allocations": summary,
		"total":       total,
		"status":      string(donation.Status),
	})
	s.publish(ctx, notify.Event{Type: notify.DonationAllocated, DonationId: donation.Id, LeadIds: leadIDs, Amount: total, ActorId: actor.Id})

	return donation, nil
}

// checkAllocatable validates the donation state, the balance and every lead.
func (s *Service) checkAllocatable(ctx context.Context, donation *models.Donation, targets []Target, total int64) error {
	// A fully allocated donation has no balance left, which callers see as over-allocation.
	if donation.Status == models.ALLOCATED {
		return fmt.Errorf("%w: donation %s is fully allocated", ErrOverAllocation, donation.Id)
	}
	if donation.Status != models.VERIFIED {
		return fmt.Errorf("%w: donation %s is %s, only %s donations can be allocated", ErrInvalidState, donation.Id, donation.Status, models.VERIFIED)
	}
	if total > donation.Remaining() {
		return fmt.Errorf("%w: requested %d, remaining %d on donation %s", ErrOverAllocation, total, donation.Remaining(), donation.Id)
	}
	for _, t := range targets {
		lead, err := s.getLead(ctx, t.LeadId)
		if err != nil {
			return err
		}
		if lead.IsClosed() {
			return fmt.Errorf("%w: lead %s is closed", ErrInvalidState, lead.Id)
		}
	}
	return nil
}

// RemoveAllocation reverses one allocation as an administrative correction. The
// lead's HelpGiven is reduced in the same write and an Allocated donation returns
// to Verified.
func (s *Service) RemoveAllocation(ctx context.Context, donationID, allocationID string, actor models.Actor) (donation *models.Donation, err error) {
	defer func() { metrics.Observe("remove_allocation", err, IsValidationError(err)) }()

	var removed models.Allocation
	for attempt := 0; ; attempt++ {
		donation, err = s.getDonation(ctx, donationID)
		if err != nil {
			return nil, err
		}
		if donation.Status != models.VERIFIED && donation.Status != models.ALLOCATED {
			return nil, fmt.Errorf("%w: donation %s is %s", ErrInvalidState, donationID, donation.Status)
		}
		idx := donation.FindAllocation(allocationID)
		if idx < 0 {
			return nil, fmt.Errorf("%w: allocation %s on donation %s", ErrNotFound, allocationID, donationID)
		}
		removed = donation.Allocations[idx]

		now := s.now()
		err = s.store.RevertAllocation(ctx, storage.AllocationReversal{
			DonationId:      donationID,
			ExpectedVersion: donation.Version,
			Index:           idx,
			Allocation:      removed,
			NewStatus:       models.VERIFIED,
			UpdatedAt:       now,
		})
		if errors.Is(err, storage.ErrConflict) && attempt < s.maxRetries {
			metrics.AllocationConflicts.Inc()
			continue
		}
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return nil, fmt.Errorf("%w: donation %s kept changing during allocation removal", ErrPersistence, donationID)
			}
			return nil, storageError(err, "allocation "+allocationID)
		}

		donation.Allocations = append(donation.Allocations[:idx:idx], donation.Allocations[idx+1:]...)
		donation.AllocatedTotal -= removed.Amount
		donation.Status = models.VERIFIED
		donation.Version++
		donation.UpdatedAt = now
		break
	}

	s.record(ctx, actor, "Allocation Removed", map[string]any{
		"donationId":   donationID,
		"allocationId": allocationID,
		"leadId":       removed.LeadId,
		"amount":       removed.Amount,
	})
	s.publish(ctx, notify.Event{Type: notify.AllocationRemoved, DonationId: donationID, LeadIds: []string{removed.LeadId}, Amount: removed.Amount, ActorId: actor.Id})

	return donation, nil
}
