package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
)

// ApplyAllocation appends the batch to the donation and credits every lead in one transaction.
func (s *Store) ApplyAllocation(ctx context.Context, batch storage.AllocationBatch) error {
	total := batch.Total()
	updatedAt := formatTime(batch.UpdatedAt)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE donations SET
				allocated_total = allocated_total + ?,
				status          = ?,
				version         = version + 1,
				updated_at      = ?
			WHERE id = ? AND version = ? AND status = ? AND amount - allocated_total >= ?
		`, total, string(batch.NewStatus), updatedAt, batch.DonationId, batch.ExpectedVersion, string(models.VERIFIED), total)
		if err != nil {
			return fmt.Errorf("failed to update donation: %w", err)
		}
		n, err := affected(res)
		if err != nil {
			return err
		}
		if n == 0 {
			return missingOr(ctx, tx, "donations", batch.DonationId, fmt.Errorf("donation %s: %w", batch.DonationId, storage.ErrConflict))
		}

		for _, a := range batch.Allocations {
			res, err := tx.ExecContext(ctx, `
				UPDATE leads SET help_given = help_given + ?, version = version + 1, updated_at = ?
				WHERE id = ? AND status <> ? AND case_action <> ?
			`, a.Amount, updatedAt, a.LeadId, string(models.LeadClosed), string(models.LeadClosed))
			if err != nil {
				return fmt.Errorf("failed to credit lead %s: %w", a.LeadId, err)
			}
			n, err := affected(res)
			if err != nil {
				return err
			}
			if n == 0 {
				return missingOr(ctx, tx, "leads", a.LeadId, fmt.Errorf("lead %s: %w", a.LeadId, storage.ErrLeadClosed))
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO allocations (id, donation_id, lead_id, amount, allocated_by_user_id, allocated_by_user_name, allocated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, a.Id, batch.DonationId, a.LeadId, a.Amount, a.AllocatedByUserId, a.AllocatedByUserName, formatTime(a.AllocatedAt))
			if err != nil {
				return fmt.Errorf("failed to insert allocation: %w", err)
			}
		}
		return nil
	})
}

// RevertAllocation deletes one allocation and debits its lead in one transaction.
func (s *Store) RevertAllocation(ctx context.Context, reversal storage.AllocationReversal) error {
	a := reversal.Allocation
	updatedAt := formatTime(reversal.UpdatedAt)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE donations SET
				allocated_total = allocated_total - ?,
				status          = ?,
				version         = version + 1,
				updated_at      = ?
			WHERE id = ? AND version = ?
		`, a.Amount, string(reversal.NewStatus), updatedAt, reversal.DonationId, reversal.ExpectedVersion)
		if err != nil {
			return fmt.Errorf("failed to update donation: %w", err)
		}
		n, err := affected(res)
		if err != nil {
			return err
		}
		if n == 0 {
			return missingOr(ctx, tx, "donations", reversal.DonationId, fmt.Errorf("donation %s: %w", reversal.DonationId, storage.ErrConflict))
		}

		res, err = tx.ExecContext(ctx, `DELETE FROM allocations WHERE id = ? AND donation_id = ?`, a.Id, reversal.DonationId)
		if err != nil {
			return fmt.Errorf("failed to delete allocation: %w", err)
		}
		if n, err = affected(res); err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("allocation %s: %w", a.Id, storage.ErrConflict)
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE leads SET help_given = help_given - ?, version = version + 1, updated_at = ?
			WHERE id = ?
		`, a.Amount, updatedAt, a.LeadId)
		if err != nil {
			return fmt.Errorf("failed to debit lead %s: %w", a.LeadId, err)
		}
		if n, err = affected(res); err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("lead %s: %w", a.LeadId, storage.ErrNotFound)
		}
		return nil
	})
}
