package websockets

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/donation-ledger/pkg/websockets"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler registers clients that subscribe to live donation and lead updates.
type Handler struct {
	connManager websockets.Registry
	hub         *websockets.Hub
}

// NewHandler creates a new Handler. hub receives connections accepted by
// ServeHTTP and may be nil when only API Gateway connections are handled.
func NewHandler(connManager websockets.Registry, hub *websockets.Hub) *Handler {
	return &Handler{
		connManager: connManager,
		hub:         hub,
	}
}

// HandleRequest dispatches an API Gateway websocket event on its route key.
func (h *Handler) HandleRequest(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return h.HandleConnect(ctx, request)
	case "$disconnect":
		return h.HandleDisconnect(ctx, request)
	default:
		return h.HandleDefault(ctx, request)
	}
}

// HandleConnect stores the id of a newly connected API Gateway client.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	slog.Info("client connected", "connectionId", connectionID)

	if err := h.connManager.AddConnection(ctx, connectionID); err != nil {
		slog.Error("failed to save connection", "connectionId", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDisconnect forgets a disconnected API Gateway client.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	slog.Info("client disconnected", "connectionId", connectionID)

	if err := h.connManager.RemoveConnection(ctx, connectionID); err != nil {
		slog.Error("failed to delete connection", "connectionId", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDefault acknowledges client messages. Updates flow one way, so the body is only logged.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Debug("ignoring client message", "connectionId", request.RequestContext.ConnectionID, "body", request.Body)
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

var upgrader = websocket.Upgrader{
	// The local server is for development; any origin may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades a local request and keeps the client attached to the hub
// until it disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	connectionID := uuid.NewString()
	ctx := r.Context()
	if err := h.connManager.AddConnection(ctx, connectionID); err != nil {
		slog.Error("failed to save local connection", "connectionId", connectionID, "error", err)
		return
	}
	if h.hub != nil {
		h.hub.Attach(connectionID, conn)
	}
	slog.Info("client connected locally", "connectionId", connectionID)

	defer func() {
		if h.hub != nil {
			h.hub.Detach(connectionID)
		}
		// The request context is done once the client has gone.
		if err := h.connManager.RemoveConnection(context.WithoutCancel(ctx), connectionID); err != nil {
			slog.Error("failed to delete local connection", "connectionId", connectionID, "error", err)
		}
		slog.Info("client disconnected locally", "connectionId", connectionID)
	}()

	// Reading is the only way to notice the client closing the connection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("unexpected close", "connectionId", connectionID, "error", err)
			}
			return
		}
	}
}
