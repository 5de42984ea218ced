package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/chris/donation-ledger/pkg/bootstrap"
	"github.com/chris/donation-ledger/pkg/config"
	wshandler "github.com/chris/donation-ledger/pkg/handlers/websockets"
)

var handler *wshandler.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	deps, err := bootstrap.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	handler = wshandler.NewHandler(deps.Store, nil)
}

// main serves the $connect, $disconnect and $default routes of the websocket API.
func main() {
	lambda.Start(handler.HandleRequest)
}
