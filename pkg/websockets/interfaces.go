package websockets

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
)

// Registry tracks the ids of clients subscribed to ledger updates.
type Registry interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}

// Publisher broadcasts a message to every subscribed client.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}

// ConnectionPoster is the part of the API Gateway management client used to push messages.
type ConnectionPoster interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// NoOpPublisher drops every message.
type NoOpPublisher struct{}

func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
