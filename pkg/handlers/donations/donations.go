package donations

import (
	"net/http"

	"github.com/chris/donation-ledger/pkg/api"
	"github.com/chris/donation-ledger/pkg/handlers/respond"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/mapping"
	"github.com/chris/donation-ledger/pkg/middleware"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
)

// DonationsHandler holds the dependencies for donation-related handlers.
type DonationsHandler struct {
	Ledger ledger.Ledger
	Store  storage.DonationReader
}

// NewDonationsHandler creates a new DonationsHandler.
func NewDonationsHandler(l ledger.Ledger, store storage.DonationReader) *DonationsHandler {
	return &DonationsHandler{Ledger: l, Store: store}
}

// CreateDonation records a new donation awaiting verification.
func (h *DonationsHandler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var body api.CreateDonationJSONRequestBody
	if !respond.Decode(w, r, &body) {
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	donation, err := h.Ledger.CreateDonation(r.Context(), mapping.ToDomainNewDonation(&body), actor)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, api.MutationResult{Success: true, Donation: mapping.ToApiDonation(donation)})
}

// ListDonations lists donations, optionally filtered by status.
func (h *DonationsHandler) ListDonations(w http.ResponseWriter, r *http.Request, params api.ListDonationsParams) {
	var status models.DonationStatus
	if params.Status != nil {
		if !params.Status.Valid() {
			respond.BadRequest(w, "unknown donation status %q", *params.Status)
			return
		}
		status = models.DonationStatus(*params.Status)
	}

	donations, err := h.Store.ListDonations(r.Context(), status)
	if err != nil {
		respond.Error(w, err)
		return
	}

	out := make([]*api.Donation, len(donations))
	for i := range donations {
		out[i] = mapping.ToApiDonation(&donations[i])
	}
	respond.JSON(w, http.StatusOK, out)
}

// GetDonation returns one donation with its allocations.
func (h *DonationsHandler) GetDonation(w http.ResponseWriter, r *http.Request, donationId string) {
	donation, err := h.Store.GetDonation(r.Context(), donationId)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiDonation(donation))
}

// VerifyDonation moves a pending donation to Verified.
func (h *DonationsHandler) VerifyDonation(w http.ResponseWriter, r *http.Request, donationId string) {
	actor, _ := middleware.ActorFromContext(r.Context())
	if err := h.Ledger.VerifyDonation(r.Context(), donationId, actor); err != nil {
		respond.Error(w, err)
		return
	}
	h.respondWithDonation(w, r, donationId)
}

// FailDonation moves a pending donation to Failed/Incomplete.
func (h *DonationsHandler) FailDonation(w http.ResponseWriter, r *http.Request, donationId string) {
	actor, _ := middleware.ActorFromContext(r.Context())
	if err := h.Ledger.MarkDonationFailed(r.Context(), donationId, actor); err != nil {
		respond.Error(w, err)
		return
	}
	h.respondWithDonation(w, r, donationId)
}

// CreatePaymentOrder opens a payment gateway order for a pending donation.
func (h *DonationsHandler) CreatePaymentOrder(w http.ResponseWriter, r *http.Request, donationId string) {
	actor, _ := middleware.ActorFromContext(r.Context())

	order, err := h.Ledger.CreatePaymentOrder(r.Context(), donationId, actor)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, api.MutationResult{Success: true, Order: mapping.ToApiPaymentOrder(order)})
}

// ConfirmPayment verifies a pending donation from a signed gateway confirmation.
func (h *DonationsHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request, donationId string) {
	var body api.ConfirmPaymentJSONRequestBody
	if !respond.Decode(w, r, &body) {
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	if err := h.Ledger.ConfirmPayment(r.Context(), donationId, mapping.ToDomainConfirmation(&body), actor); err != nil {
		respond.Error(w, err)
		return
	}
	h.respondWithDonation(w, r, donationId)
}

// AllocateDonation assigns part or all of a verified donation to leads.
func (h *DonationsHandler) AllocateDonation(w http.ResponseWriter, r *http.Request, donationId string) {
	var body api.AllocateDonationJSONRequestBody
	if !respond.Decode(w, r, &body) {
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	donation, err := h.Ledger.Allocate(r.Context(), donationId, mapping.ToDomainTargets(body.Targets), actor)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, api.MutationResult{Success: true, Donation: mapping.ToApiDonation(donation)})
}

// RemoveAllocation reverses one allocation.
func (h *DonationsHandler) RemoveAllocation(w http.ResponseWriter, r *http.Request, donationId string, allocationId string) {
	actor, _ := middleware.ActorFromContext(r.Context())

	donation, err := h.Ledger.RemoveAllocation(r.Context(), donationId, allocationId, actor)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, api.MutationResult{Success: true, Donation: mapping.ToApiDonation(donation)})
}

// respondWithDonation answers a committed status change with the donation's current state.
// A failed re-read still reports success, since the mutation has committed.
func (h *DonationsHandler) respondWithDonation(w http.ResponseWriter, r *http.Request, donationId string) {
	result := api.MutationResult{Success: true}
	if donation, err := h.Store.GetDonation(r.Context(), donationId); err == nil {
		result.Donation = mapping.ToApiDonation(donation)
	}
	respond.JSON(w, http.StatusOK, result)
}
