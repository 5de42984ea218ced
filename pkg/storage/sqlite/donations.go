package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
)

const donationColumns = `id, donor_id, donor_name, amount, type, payment_method, transaction_id,
	status, allocated_total, version, created_at, updated_at, verified_at, verified_by_id`

func scanDonation(row scanner) (*models.Donation, error) {
	var (
		d                    models.Donation
		status               string
		createdAt, updatedAt string
		verifiedAt           sql.NullString
	)
	err := row.Scan(&d.Id, &d.DonorId, &d.DonorName, &d.Amount, &d.Type, &d.PaymentMethod, &d.TransactionId,
		&status, &d.AllocatedTotal, &d.Version, &createdAt, &updatedAt, &verifiedAt, &d.VerifiedById)
	if err != nil {
		return nil, err
	}
	d.Status = models.DonationStatus(status)
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if verifiedAt.Valid && verifiedAt.String != "" {
		t, err := parseTime(verifiedAt.String)
		if err != nil {
			return nil, err
		}
		d.VerifiedAt = &t
	}
	d.Allocations = []models.Allocation{}
	return &d, nil
}

// CreateDonation stores a new donation. Allocations on the input are ignored.
func (s *Store) CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	var verifiedAt any
	if donation.VerifiedAt != nil {
		verifiedAt = formatTime(*donation.VerifiedAt)
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO donations (`+donationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, donation.Id, donation.DonorId, donation.DonorName, donation.Amount, donation.Type, donation.PaymentMethod,
		donation.TransactionId, string(donation.Status), donation.Version,
		formatTime(donation.CreatedAt), formatTime(donation.UpdatedAt), verifiedAt, donation.VerifiedById)
	if err != nil {
		return nil, fmt.Errorf("failed to insert donation: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("donation %s: %w", donation.Id, storage.ErrAlreadyExists)
	}

	created := *donation
	created.AllocatedTotal = 0
	created.Allocations = []models.Allocation{}
	return &created, nil
}

// GetDonation retrieves a donation and its allocations.
func (s *Store) GetDonation(ctx context.Context, donationID string) (*models.Donation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+donationColumns+` FROM donations WHERE id = ?`, donationID)
	donation, err := scanDonation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("donation %s: %w", donationID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}

	byDonation, err := s.loadAllocations(ctx, `WHERE donation_id = ?`, donationID)
	if err != nil {
		return nil, err
	}
	if allocs, ok := byDonation[donationID]; ok {
		donation.Allocations = allocs
	}
	return donation, nil
}

// ListDonations retrieves donations newest first, optionally filtered by status.
func (s *Store) ListDonations(ctx context.Context, status models.DonationStatus) ([]models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	donations := []models.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate donations: %w", err)
	}
	rows.Close()

	byDonation, err := s.loadAllocations(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range donations {
		if allocs, ok := byDonation[donations[i].Id]; ok {
			donations[i].Allocations = allocs
		}
	}
	return donations, nil
}

// TransitionDonation changes the status if it is still change.From.
func (s *Store) TransitionDonation(ctx context.Context, change storage.StatusChange) error {
	var verifiedAt, verifiedBy any
	if change.To == models.VERIFIED {
		verifiedAt = formatTime(change.At)
		verifiedBy = change.ActorId
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE donations SET
			status         = ?,
			version        = version + 1,
			updated_at     = ?,
			verified_at    = COALESCE(?, verified_at),
			verified_by_id = COALESCE(?, verified_by_id)
		WHERE id = ? AND status = ?
	`, string(change.To), formatTime(change.At), verifiedAt, verifiedBy, change.DonationId, string(change.From))
	if err != nil {
		return fmt.Errorf("failed to update donation status: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return missingOr(ctx, s.db, "donations", change.DonationId, fmt.Errorf("donation %s is not %s: %w", change.DonationId, change.From, storage.ErrConflict))
	}
	return nil
}

// RecordPayment stores the gateway transaction id on a pending donation.
func (s *Store) RecordPayment(ctx context.Context, donationID, transactionID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE donations SET transaction_id = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND status = ?
	`, transactionID, formatTime(time.Now()), donationID, string(models.PENDING_VERIFICATION))
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return missingOr(ctx, s.db, "donations", donationID, fmt.Errorf("donation %s is not pending verification: %w", donationID, storage.ErrConflict))
	}
	return nil
}

// loadAllocations returns allocations grouped by donation id, in append order.
func (s *Store) loadAllocations(ctx context.Context, where string, args ...any) (map[string][]models.Allocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT donation_id, id, lead_id, amount, allocated_by_user_id, allocated_by_user_name, allocated_at
		FROM allocations `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	byDonation := make(map[string][]models.Allocation)
	for rows.Next() {
		var (
			donationID, allocatedAt string
			a                       models.Allocation
		)
		if err := rows.Scan(&donationID, &a.Id, &a.LeadId, &a.Amount, &a.AllocatedByUserId, &a.AllocatedByUserName, &allocatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		if a.AllocatedAt, err = parseTime(allocatedAt); err != nil {
			return nil, err
		}
		byDonation[donationID] = append(byDonation[donationID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocations: %w", err)
	}
	return byDonation, nil
}
