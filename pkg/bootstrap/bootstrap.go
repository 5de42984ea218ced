// Package bootstrap builds the storage backend, notification publisher and
// ledger service shared by the binaries under cmd/.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/chris/donation-ledger/pkg/config"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/chris/donation-ledger/pkg/payments"
	"github.com/chris/donation-ledger/pkg/storage"
	dydbstore "github.com/chris/donation-ledger/pkg/storage/dynamodb"
	"github.com/chris/donation-ledger/pkg/storage/sqlite"
	"github.com/chris/donation-ledger/pkg/websockets"
)

// Deps holds the opened backend and the AWS configuration, when one was needed.
type Deps struct {
	Config config.Config
	Store  storage.Backend
	AWS    *aws.Config
	close  func() error
}

// Close releases the storage backend.
func (d *Deps) Close() error {
	if d.close == nil {
		return nil
	}
	return d.close()
}

// Open connects to the configured storage backend.
func Open(ctx context.Context, cfg config.Config) (*Deps, error) {
	deps := &Deps{Config: cfg}

	if cfg.Storage.Backend == config.BackendSQLite {
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		deps.Store = store
		deps.close = store.Close
		return deps, nil
	}

	awsCfg, err := deps.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	deps.Store = dydbstore.New(
		dynamodb.NewFromConfig(awsCfg),
		cfg.DynamoDB.DonationsTable,
		cfg.DynamoDB.LeadsTable,
		cfg.DynamoDB.ActivityTable,
		cfg.DynamoDB.ConnectionsTable,
	)
	return deps, nil
}

func (d *Deps) awsConfig(ctx context.Context) (aws.Config, error) {
	if d.AWS != nil {
		return *d.AWS, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	d.AWS = &cfg
	return cfg, nil
}

// WebsocketPublisher returns the publisher that reaches live clients: the API
// Gateway management API when an endpoint is configured, otherwise hub.
func (d *Deps) WebsocketPublisher(ctx context.Context, hub *websockets.Hub) (websockets.Publisher, error) {
	endpoint := d.Config.Notifications.WebsocketEndpoint
	if endpoint == "" {
		if hub == nil {
			return &websockets.NoOpPublisher{}, nil
		}
		return hub, nil
	}
	awsCfg, err := d.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	return websockets.NewGatewayPublisher(awsCfg, d.Store, endpoint), nil
}

// EventPublisher returns the ledger event publisher. With a queue configured
// events go to SQS for the notification lambda; otherwise they are fanned out
// in-process.
func (d *Deps) EventPublisher(ctx context.Context, hub *websockets.Hub) (notify.Publisher, error) {
	if url := d.Config.Notifications.QueueURL; url != "" {
		awsCfg, err := d.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		return notify.NewSQSPublisher(sqs.NewFromConfig(awsCfg), url), nil
	}

	ws, err := d.WebsocketPublisher(ctx, hub)
	if err != nil {
		return nil, err
	}
	return &notify.DirectPublisher{Fanout: notify.NewFanout(d.Store, ws)}, nil
}

// Service builds the ledger service on the opened store.
func (d *Deps) Service(publisher notify.Publisher, logger *slog.Logger) *ledger.Service {
	opts := []ledger.Option{
		ledger.WithLogger(logger),
		ledger.WithMaxRetries(d.Config.Ledger.AllocationMaxRetries),
	}
	switch p := d.Config.Payments; {
	case p.RazorpayKeyID != "":
		gateway := payments.NewRazorpayGateway(p.RazorpayKeyID, p.RazorpayKeySecret, p.RazorpayBaseURL, nil)
		opts = append(opts, ledger.WithPaymentGateway(gateway, p.Currency))
	case p.RazorpayKeySecret != "":
		opts = append(opts, ledger.WithPaymentVerifier(payments.NewRazorpayVerifier(p.RazorpayKeySecret)))
	}
	return ledger.NewService(d.Store, publisher, opts...)
}
