package admin

import (
	"net/http"

	"github.com/chris/donation-ledger/pkg/api"
	"github.com/chris/donation-ledger/pkg/handlers/respond"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/mapping"
	"github.com/chris/donation-ledger/pkg/middleware"
)

// AdminHandler serves organization-wide reporting and maintenance.
type AdminHandler struct {
	Ledger ledger.Ledger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(l ledger.Ledger) *AdminHandler {
	return &AdminHandler{Ledger: l}
}

// GetSummary returns the financial overview.
func (h *AdminHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Ledger.Summary(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiSummary(summary))
}

// Reconcile recomputes lead helpGiven values. With dryRun set nothing is written.
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request, params api.ReconcileParams) {
	dryRun := params.DryRun != nil && *params.DryRun
	actor, _ := middleware.ActorFromContext(r.Context())

	found, err := h.Ledger.Reconcile(r.Context(), dryRun, actor)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, api.ReconcileResult{
		Success:       true,
		DryRun:        dryRun,
		Discrepancies: mapping.ToApiDiscrepancies(found),
	})
}
