package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/chris/donation-ledger/pkg/bootstrap"
	"github.com/chris/donation-ledger/pkg/config"
	"github.com/chris/donation-ledger/pkg/notify"
)

var fanout *notify.Fanout

func init() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Notifications.WebsocketEndpoint == "" {
		log.Fatal("WEBSOCKET_API_ENDPOINT environment variable not set")
	}

	deps, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	publisher, err := deps.WebsocketPublisher(ctx, nil)
	if err != nil {
		log.Fatalf("failed to create websocket publisher: %v", err)
	}
	fanout = notify.NewFanout(deps.Store, publisher)
}

// HandleRequest delivers queued ledger events to connected websocket clients.
// Messages that fail are reported individually so SQS retries only those.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, message := range sqsEvent.Records {
		var event notify.Event
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			// A malformed body will never parse; retrying it only delays the queue.
			log.Printf("ERROR: dropping unparseable message %s: %v", message.MessageId, err)
			continue
		}

		if err := fanout.Deliver(ctx, event); err != nil {
			log.Printf("ERROR: failed to deliver %s event for message %s: %v", event.Type, message.MessageId, err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}

		log.Printf("Delivered %s event (donation=%q leads=%d)", event.Type, event.DonationId, len(event.LeadIds))
	}

	return resp, nil
}

func main() {
	lambda.Start(HandleRequest)
}
