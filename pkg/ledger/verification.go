package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chris/donation-ledger/pkg/metrics"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/chris/donation-ledger/pkg/payments"
	"github.com/chris/donation-ledger/pkg/storage"
)

// NewDonation holds the caller-supplied fields of a donation.
type NewDonation struct {
	DonorId       string `json:"donorId"`
	DonorName     string `json:"donorName"`
	Amount        int64  `json:"amount"`
	Type          string `json:"type"`
	PaymentMethod string `json:"paymentMethod"`
	TransactionId string `json:"transactionId,omitempty"`
}

// CreateDonation records a new donation awaiting verification.
func (s *Service) CreateDonation(ctx context.Context, in NewDonation, actor models.Actor) (donation *models.Donation, err error) {
	defer func() { metrics.Observe("create_donation", err, IsValidationError(err)) }()

	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: donation amount must be positive, got %d", ErrInvalidArgument, in.Amount)
	}
	if strings.TrimSpace(in.DonorId) == "" {
		return nil, fmt.Errorf("%w: donor id is required", ErrInvalidArgument)
	}

	now := s.now()
	donation = &models.Donation{
		Id:            s.newID(),
		DonorId:       in.DonorId,
		DonorName:     in.DonorName,
		Amount:        in.Amount,
		Type:          in.Type,
		PaymentMethod: in.PaymentMethod,
		TransactionId: in.TransactionId,
		Status:        models.PENDING_VERIFICATION,
		Allocations:   []models.Allocation{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.store.CreateDonation(ctx, donation)
	if err != nil {
		return nil, storageError(err, "donation "+donation.Id)
	}

	s.record(ctx, actor, "Donation Created", map[string]any{
		"donationId": created.Id,
		"amount":     created.Amount,
		"donorId":    created.DonorId,
	})
	s.publish(ctx, notify.Event{Type: notify.DonationCreated, DonationId: created.Id, Amount: created.Amount, ActorId: actor.Id})

	return created, nil
}

// VerifyDonation moves a donation from Pending verification to Verified.
func (s *Service) VerifyDonation(ctx context.Context, donationID string, actor models.Actor) (err error) {
	defer func() { metrics.Observe("verify_donation", err, IsValidationError(err)) }()

	donation, err := s.transition(ctx, donationID, models.PENDING_VERIFICATION, models.VERIFIED, actor)
	if err != nil {
		return err
	}

	s.record(ctx, actor, "Donation Verified", map[string]any{
		"donationId": donation.Id,
		"amount":     donation.Amount,
	})
	s.publish(ctx, notify.Event{Type: notify.DonationVerified, DonationId: donation.Id, Amount: donation.Amount, ActorId: actor.Id})

	return nil
}

// MarkDonationFailed terminates a donation whose payment never completed.
func (s *Service) MarkDonationFailed(ctx context.Context, donationID string, actor models.Actor) (err error) {
	defer func() { metrics.Observe("mark_donation_failed", err, IsValidationError(err)) }()

	donation, err := s.transition(ctx, donationID, models.PENDING_VERIFICATION, models.FAILED, actor)
	if err != nil {
		return err
	}

	s.record(ctx, actor, "Donation Marked Failed", map[string]any{
		"donationId": donation.Id,
		"amount":     donation.Amount,
	})
	s.publish(ctx, notify.Event{Type: notify.DonationFailed, DonationId: donation.Id, Amount: donation.Amount, ActorId: actor.Id})

	return nil
}

// CreatePaymentOrder opens a gateway order for the full amount of a pending
// donation. The donation id is the order receipt.
func (s *Service) CreatePaymentOrder(ctx context.Context, donationID string, actor models.Actor) (order *payments.Order, err error) {
	defer func() { metrics.Observe("create_payment_order", err, IsValidationError(err)) }()

	if s.gateway == nil {
		return nil, fmt.Errorf("%w: payment gateway is not configured", ErrInvalidState)
	}

	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.Status != models.PENDING_VERIFICATION {
		return nil, fmt.Errorf("%w: donation %s is %s, not %s", ErrInvalidState, donationID, donation.Status, models.PENDING_VERIFICATION)
	}

	order, err = s.gateway.CreateOrder(ctx, donation.Amount, s.currency, donation.Id)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidOrder) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return nil, fmt.Errorf("%w: payment gateway: %v", ErrPersistence, err)
	}

	s.record(ctx, actor, "Payment Order Created", map[string]any{
		"donationId": donationID,
		"orderId":    order.OrderId,
		"amount":     order.Amount,
		"currency":   order.Currency,
	})
	return order, nil
}

// ConfirmPayment checks a gateway confirmation for a pending donation. A valid
// signature records the gateway payment id and leaves the donation for admin
// verification; an invalid one marks the donation failed.
func (s *Service) ConfirmPayment(ctx context.Context, donationID string, c payments.Confirmation, actor models.Actor) (err error) {
	defer func() { metrics.Observe("confirm_payment", err, IsValidationError(err)) }()

	if s.verifier == nil {
		return fmt.Errorf("%w: payment verification is not configured", ErrInvalidState)
	}

	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return err
	}
	if donation.Status != models.PENDING_VERIFICATION {
		return fmt.Errorf("%w: donation %s is %s, not %s", ErrInvalidState, donationID, donation.Status, models.PENDING_VERIFICATION)
	}

	if !s.verifier.VerifySignature(c) {
		if failErr := s.MarkDonationFailed(ctx, donationID, actor); failErr != nil {
			s.logger.Error("failed to mark donation failed after signature mismatch", "donation_id", donationID, "error", failErr)
		}
		return fmt.Errorf("%w: payment signature mismatch for donation %s", ErrInvalidArgument, donationID)
	}

	if err := s.store.RecordPayment(ctx, donationID, c.PaymentId); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return fmt.Errorf("%w: donation %s is no longer pending verification", ErrInvalidState, donationID)
		}
		return storageError(err, "donation "+donationID)
	}

	s.record(ctx, actor, "Donation Payment Confirmed", map[string]any{
		"donationId": donationID,
		"orderId":    c.OrderId,
		"paymentId":  c.PaymentId,
	})

	return nil
}

// transition applies a guarded status change and returns the donation as it was before the change.
func (s *Service) transition(ctx context.Context, donationID string, from, to models.DonationStatus, actor models.Actor) (*models.Donation, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s cannot move to %s", ErrInvalidState, from, to)
	}

	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.Status != from {
		return nil, fmt.Errorf("%w: donation %s is %s, not %s", ErrInvalidState, donationID, donation.Status, from)
	}

	err = s.store.TransitionDonation(ctx, storage.StatusChange{
		DonationId: donationID,
		From:       from,
		To:         to,
		ActorId:    actor.Id,
		At:         s.now(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: donation %s changed state concurrently", ErrInvalidState, donationID)
		}
		return nil, storageError(err, "donation "+donationID)
	}

	return donation, nil
}
