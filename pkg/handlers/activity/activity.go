package activity

import (
	"net/http"

	"github.com/chris/donation-ledger/pkg/api"
	"github.com/chris/donation-ledger/pkg/handlers/respond"
	"github.com/chris/donation-ledger/pkg/mapping"
	"github.com/chris/donation-ledger/pkg/storage"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// ActivityHandler serves the audit trail.
type ActivityHandler struct {
	Store storage.ActivityReader
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(store storage.ActivityReader) *ActivityHandler {
	return &ActivityHandler{Store: store}
}

// ListActivity returns the most recent activity log entries, newest first.
func (h *ActivityHandler) ListActivity(w http.ResponseWriter, r *http.Request, params api.ListActivityParams) {
	limit := int32(defaultLimit)
	if params.Limit != nil {
		if *params.Limit <= 0 || *params.Limit > maxLimit {
			respond.BadRequest(w, "limit must be between 1 and %d", maxLimit)
			return
		}
		limit = *params.Limit
	}

	entries, err := h.Store.ListActivity(r.Context(), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	out := make([]*api.ActivityEntry, len(entries))
	for i := range entries {
		out[i] = mapping.ToApiActivityEntry(&entries[i])
	}
	respond.JSON(w, http.StatusOK, out)
}
