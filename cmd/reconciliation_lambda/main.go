package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/chris/donation-ledger/pkg/bootstrap"
	"github.com/chris/donation-ledger/pkg/config"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/models"
)

var service ledger.Ledger

// reconciler is the actor recorded in the activity log for scheduled repairs.
var reconciler = models.Actor{Id: "system:reconciliation", Name: "Scheduled reconciliation", Role: "System"}

func init() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	deps, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	// Repairs are audited but do not notify clients.
	service = deps.Service(nil, nil)
}

// ReconcileRequest is the optional payload of the EventBridge schedule.
type ReconcileRequest struct {
	DryRun bool `json:"dryRun"`
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context, req ReconcileRequest) error {
	log.Printf("Starting helpGiven reconciliation (dryRun=%t)...", req.DryRun)

	found, err := service.Reconcile(ctx, req.DryRun, reconciler)
	if err != nil {
		log.Printf("ERROR: reconciliation failed: %v", err)
		return err
	}

	if len(found) == 0 {
		log.Println("No discrepancies found.")
		return nil
	}

	for _, d := range found {
		switch {
		case d.Missing:
			log.Printf("Allocations reference missing lead %s (total %d)", d.LeadId, d.Expected)
		case d.Repaired:
			log.Printf("Repaired lead %s: helpGiven %d -> %d", d.LeadId, d.Recorded, d.Expected)
		default:
			log.Printf("Lead %s out of sync: helpGiven %d, allocations total %d", d.LeadId, d.Recorded, d.Expected)
		}
	}

	log.Printf("Reconciliation finished with %d discrepancies.", len(found))
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
