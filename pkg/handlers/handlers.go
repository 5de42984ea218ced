package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chris/donation-ledger/pkg/api"
	"github.com/chris/donation-ledger/pkg/handlers/activity"
	"github.com/chris/donation-ledger/pkg/handlers/admin"
	"github.com/chris/donation-ledger/pkg/handlers/donations"
	"github.com/chris/donation-ledger/pkg/handlers/leads"
	"github.com/chris/donation-ledger/pkg/handlers/respond"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/storage"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*donations.DonationsHandler
	*leads.LeadsHandler
	*activity.ActivityHandler
	*admin.AdminHandler
}

// NewApiHandler creates a new ApiHandler. Mutations go through the ledger;
// reads go straight to the store.
func NewApiHandler(l ledger.Ledger, store storage.ApiStore) *ApiHandler {
	return &ApiHandler{
		DonationsHandler: donations.NewDonationsHandler(l, store),
		LeadsHandler:     leads.NewLeadsHandler(l, store),
		ActivityHandler:  activity.NewActivityHandler(store),
		AdminHandler:     admin.NewAdminHandler(l),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// Mount registers the API routes on r. Parameter binding failures are answered
// with the same JSON result body as every other failed request.
func Mount(r chi.Router, h api.ServerInterface) http.Handler {
	return api.HandlerWithOptions(h, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: respond.ParamError,
	})
}
