package leads

import (
	"net/http"
	"sort"

	"github.com/chris/donation-ledger/pkg/api"
	"github.com/chris/donation-ledger/pkg/handlers/respond"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/mapping"
	"github.com/chris/donation-ledger/pkg/middleware"
	"github.com/chris/donation-ledger/pkg/storage"
)

// LeadsHandler holds the dependencies for lead-related handlers.
type LeadsHandler struct {
	Ledger ledger.Ledger
	Store  storage.LeadReader
}

// NewLeadsHandler creates a new LeadsHandler.
func NewLeadsHandler(l ledger.Ledger, store storage.LeadReader) *LeadsHandler {
	return &LeadsHandler{Ledger: l, Store: store}
}

// CreateLead handles the logic for creating a new lead.
func (h *LeadsHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var body api.CreateLeadJSONRequestBody
	if !respond.Decode(w, r, &body) {
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	lead, err := h.Ledger.CreateLead(r.Context(), mapping.ToDomainNewLead(&body), actor)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, api.MutationResult{Success: true, Lead: mapping.ToApiLead(lead)})
}

// ListLeads returns every lead, most recently created first.
func (h *LeadsHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Store.ListLeads(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})

	out := make([]*api.Lead, len(leads))
	for i := range leads {
		out[i] = mapping.ToApiLead(&leads[i])
	}
	respond.JSON(w, http.StatusOK, out)
}

// GetLead handles the logic for retrieving a lead by its ID.
func (h *LeadsHandler) GetLead(w http.ResponseWriter, r *http.Request, leadId string) {
	lead, err := h.Store.GetLead(r.Context(), leadId)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiLead(lead))
}

// UpdateLead applies a partial update to a lead's editable fields.
func (h *LeadsHandler) UpdateLead(w http.ResponseWriter, r *http.Request, leadId string) {
	var body api.UpdateLeadJSONRequestBody
	if !respond.Decode(w, r, &body) {
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	lead, err := h.Ledger.UpdateLead(r.Context(), leadId, mapping.ToDomainLeadUpdate(&body), actor)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, api.MutationResult{Success: true, Lead: mapping.ToApiLead(lead)})
}
