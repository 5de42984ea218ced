package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// GatewayPublisher pushes messages to clients connected through an API Gateway websocket API.
type GatewayPublisher struct {
	connections Registry
	client      ConnectionPoster
}

// NewGatewayPublisher creates a GatewayPublisher that posts to the given management endpoint.
func NewGatewayPublisher(cfg aws.Config, connections Registry, endpoint string) *GatewayPublisher {
	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return NewGatewayPublisherWithClient(connections, client)
}

func NewGatewayPublisherWithClient(connections Registry, client ConnectionPoster) *GatewayPublisher {
	return &GatewayPublisher{connections: connections, client: client}
}

// Publish posts the message to every registered connection. A connection API Gateway
// reports as gone is unregistered and does not count as a failure. Any other
// failed post is returned so the caller can redeliver; since payloads carry
// current state, clients that already received it just see it twice.
func (p *GatewayPublisher) Publish(ctx context.Context, message Message) error {
	ids, err := p.connections.GetAllConnections(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all connections: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", message.Type, err)
	}

	var errs []error
	for _, id := range ids {
		_, err := p.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(id),
			Data:         data,
		})
		if err == nil {
			continue
		}

		var gone *apigwtypes.GoneException
		if !errors.As(err, &gone) {
			errs = append(errs, fmt.Errorf("failed to post to connection %s: %w", id, err))
			continue
		}
		slog.Info("removing stale connection", "connectionId", id)
		if err := p.connections.RemoveConnection(ctx, id); err != nil {
			slog.Error("failed to remove stale connection", "connectionId", id, "error", err)
		}
	}
	return errors.Join(errs...)
}
