package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/donation-ledger/pkg/config"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/chris/donation-ledger/pkg/storage/sqlite"
	"github.com/chris/donation-ledger/pkg/websockets"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "ledger.db")

	deps, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { deps.Close() })

	assert.IsType(t, &sqlite.Store{}, deps.Store)
	assert.Nil(t, deps.AWS)

	t.Run("Local Publishers", func(t *testing.T) {
		hub := websockets.NewHub()

		ws, err := deps.WebsocketPublisher(ctx, hub)
		require.NoError(t, err)
		assert.Same(t, hub, ws)

		ws, err = deps.WebsocketPublisher(ctx, nil)
		require.NoError(t, err)
		assert.IsType(t, &websockets.NoOpPublisher{}, ws)

		events, err := deps.EventPublisher(ctx, hub)
		require.NoError(t, err)
		assert.IsType(t, &notify.DirectPublisher{}, events)
	})

	t.Run("Gateway Publisher", func(t *testing.T) {
		withEndpoint := *deps
		withEndpoint.AWS = &aws.Config{Region: "us-east-1"}
		withEndpoint.Config.Notifications.WebsocketEndpoint = "https://example.execute-api.us-east-1.amazonaws.com/prod"

		ws, err := withEndpoint.WebsocketPublisher(ctx, websockets.NewHub())
		require.NoError(t, err)
		assert.IsType(t, &websockets.GatewayPublisher{}, ws)
	})

	t.Run("Service Round Trip", func(t *testing.T) {
		events, err := deps.EventPublisher(ctx, nil)
		require.NoError(t, err)
		svc := deps.Service(events, nil)
		actor := models.Actor{Id: "admin-1"}

		donation, err := svc.CreateDonation(ctx, ledger.NewDonation{DonorId: "donor-1", Amount: 1000}, actor)
		require.NoError(t, err)
		require.NoError(t, svc.VerifyDonation(ctx, donation.Id, actor))

		stored, err := deps.Store.GetDonation(ctx, donation.Id)
		require.NoError(t, err)
		assert.Equal(t, models.VERIFIED, stored.Status)
	})

	t.Run("Payment Gateway From Config", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"order_1","amount":700,"currency":"INR","status":"created"}`))
		}))
		defer srv.Close()

		withGateway := *deps
		withGateway.Config.Payments.RazorpayKeyID = "rzp_test_key"
		withGateway.Config.Payments.RazorpayKeySecret = "secret"
		withGateway.Config.Payments.RazorpayBaseURL = srv.URL
		svc := withGateway.Service(&notify.NoOpPublisher{}, nil)
		actor := models.Actor{Id: "admin-1"}

		donation, err := svc.CreateDonation(ctx, ledger.NewDonation{DonorId: "donor-1", Amount: 700}, actor)
		require.NoError(t, err)
		order, err := svc.CreatePaymentOrder(ctx, donation.Id, actor)

		require.NoError(t, err)
		assert.Equal(t, "order_1", order.OrderId)
	})
}
