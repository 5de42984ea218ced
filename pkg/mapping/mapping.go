package mapping

import (
	"time"

	"github.com/chris/donation-ledger/pkg/api"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/payments"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ToApiDonation converts a domain Donation model to an API Donation model.
func ToApiDonation(d *models.Donation) *api.Donation {
	allocations := make([]api.Allocation, len(d.Allocations))
	for i, a := range d.Allocations {
		allocations[i] = ToApiAllocation(a)
	}
	return &api.Donation{
		Id:             d.Id,
		DonorId:        d.DonorId,
		DonorName:      d.DonorName,
		Amount:         d.Amount,
		Type:           d.Type,
		PaymentMethod:  d.PaymentMethod,
		TransactionId:  optional(d.TransactionId),
		Status:         api.DonationStatus(d.Status),
		Allocations:    allocations,
		AllocatedTotal: d.AllocatedTotal,
		Remaining:      d.Remaining(),
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		VerifiedAt:     d.VerifiedAt,
		VerifiedById:   optional(d.VerifiedById),
	}
}

// ToApiAllocation converts a domain Allocation to its API form.
func ToApiAllocation(a models.Allocation) api.Allocation {
	return api.Allocation{
		Id:                  a.Id,
		LeadId:              a.LeadId,
		Amount:              a.Amount,
		AllocatedByUserId:   a.AllocatedByUserId,
		AllocatedByUserName: a.AllocatedByUserName,
		AllocatedAt:         a.AllocatedAt,
	}
}

// ToApiLead converts a domain Lead model to an API Lead model.
func ToApiLead(l *models.Lead) *api.Lead {
	tags := l.DegreeTags
	if tags == nil {
		tags = []string{}
	}
	return &api.Lead{
		Id:            l.Id,
		Name:          l.Name,
		Purpose:       l.Purpose,
		Category:      l.Category,
		DegreeTags:    tags,
		HelpRequested: l.HelpRequested,
		HelpGiven:     l.HelpGiven,
		Status:        api.LeadStatus(l.Status),
		CaseAction:    api.LeadStatus(l.CaseAction),
		DueDate:       toDate(l.DueDate),
		Version:       l.Version,
		CreatedById:   l.CreatedById,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// ToApiActivityEntry converts an audit log entry to its API form.
func ToApiActivityEntry(e *models.ActivityLogEntry) *api.ActivityEntry {
	entry := &api.ActivityEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		UserName:  e.UserName,
		Role:      e.Role,
		Activity:  e.Activity,
		Timestamp: e.Timestamp,
	}
	if len(e.Details) > 0 {
		details := map[string]interface{}(e.Details)
		entry.Details = &details
	}
	return entry
}

// ToApiSummary converts the ledger summary to its API form.
func ToApiSummary(s *ledger.Summary) *api.Summary {
	return &api.Summary{
		TotalDonated:        s.TotalDonated,
		TotalVerified:       s.TotalVerified,
		TotalAllocated:      s.TotalAllocated,
		UnallocatedVerified: s.UnallocatedVerified,
		PendingCount:        s.PendingCount,
		PendingAmount:       s.PendingAmount,
		FailedCount:         s.FailedCount,
		LeadCount:           s.LeadCount,
		OpenLeadCount:       s.OpenLeadCount,
		TotalRequested:      s.TotalRequested,
		TotalHelpGiven:      s.TotalHelpGiven,
	}
}

// ToApiDiscrepancies converts reconciliation findings to their API form.
func ToApiDiscrepancies(found []ledger.Discrepancy) []api.Discrepancy {
	out := make([]api.Discrepancy, len(found))
	for i, d := range found {
		out[i] = api.Discrepancy{
			LeadId:   d.LeadId,
			Recorded: d.Recorded,
			Expected: d.Expected,
			Repaired: d.Repaired,
		}
		if d.Missing {
			missing := true
			out[i].Missing = &missing
		}
	}
	return out
}

// ToDomainNewDonation converts an API NewDonation to the ledger input.
func ToDomainNewDonation(in *api.NewDonation) ledger.NewDonation {
	return ledger.NewDonation{
		DonorId:       in.DonorId,
		DonorName:     value(in.DonorName),
		Amount:        in.Amount,
		Type:          value(in.Type),
		PaymentMethod: value(in.PaymentMethod),
		TransactionId: value(in.TransactionId),
	}
}

// ToDomainTargets converts API allocation targets to ledger targets.
func ToDomainTargets(in []api.AllocationTarget) []ledger.Target {
	targets := make([]ledger.Target, len(in))
	for i, t := range in {
		targets[i] = ledger.Target{LeadId: t.LeadId, Amount: t.Amount}
	}
	return targets
}

// ToApiPaymentOrder converts a gateway order.
func ToApiPaymentOrder(o *payments.Order) *api.PaymentOrder {
	if o == nil {
		return nil
	}
	return &api.PaymentOrder{OrderId: o.OrderId, Amount: o.Amount, Currency: o.Currency}
}

// ToDomainConfirmation converts an API payment confirmation.
func ToDomainConfirmation(in *api.PaymentConfirmation) payments.Confirmation {
	return payments.Confirmation{
		OrderId:   in.OrderId,
		PaymentId: in.PaymentId,
		Signature: in.Signature,
	}
}

// ToDomainNewLead converts an API NewLead to the ledger input.
func ToDomainNewLead(in *api.NewLead) ledger.NewLead {
	lead := ledger.NewLead{
		Name:          in.Name,
		Purpose:       value(in.Purpose),
		Category:      value(in.Category),
		HelpRequested: in.HelpRequested,
	}
	if in.DegreeTags != nil {
		lead.DegreeTags = *in.DegreeTags
	}
	if in.DueDate != nil {
		lead.DueDate = in.DueDate.Time
	}
	return lead
}

// ToDomainLeadUpdate converts an API LeadUpdate to the ledger's partial update.
func ToDomainLeadUpdate(in *api.LeadUpdate) ledger.LeadUpdate {
	update := ledger.LeadUpdate{
		Name:          in.Name,
		Purpose:       in.Purpose,
		Category:      in.Category,
		DegreeTags:    in.DegreeTags,
		HelpRequested: in.HelpRequested,
		Status:        toLeadStatus(in.Status),
		CaseAction:    toLeadStatus(in.CaseAction),
	}
	if in.DueDate != nil {
		due := in.DueDate.Time
		update.DueDate = &due
	}
	return update
}

func toLeadStatus(s *api.LeadStatus) *models.LeadStatus {
	if s == nil {
		return nil
	}
	status := models.LeadStatus(*s)
	return &status
}

func toDate(t time.Time) *openapi_types.Date {
	if t.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: t}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
