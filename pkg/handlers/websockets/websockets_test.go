package websockets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/donation-ledger/pkg/storage/mocks"
	ws "github.com/chris/donation-ledger/pkg/websockets"
)

func gatewayRequest(route, connectionID string) events.APIGatewayWebsocketProxyRequest {
	return events.APIGatewayWebsocketProxyRequest{
		RequestContext: events.APIGatewayWebsocketProxyRequestContext{RouteKey: route, ConnectionID: connectionID},
	}
}

func TestHandleRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Connect And Disconnect", func(t *testing.T) {
		connections := mocks.NewWebSocketManager(t)
		connections.On("AddConnection", mock.Anything, "conn-1").Return(nil).Once()
		connections.On("RemoveConnection", mock.Anything, "conn-1").Return(nil).Once()
		h := NewHandler(connections, nil)

		resp, err := h.HandleRequest(ctx, gatewayRequest("$connect", "conn-1"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = h.HandleRequest(ctx, gatewayRequest("$disconnect", "conn-1"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Store Failure", func(t *testing.T) {
		connections := mocks.NewWebSocketManager(t)
		connections.On("AddConnection", mock.Anything, "conn-2").Return(errors.New("throttled"))
		h := NewHandler(connections, nil)

		resp, err := h.HandleRequest(ctx, gatewayRequest("$connect", "conn-2"))

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("Client Messages Are Acknowledged", func(t *testing.T) {
		h := NewHandler(mocks.NewWebSocketManager(t), nil)

		resp, err := h.HandleRequest(ctx, gatewayRequest("$default", "conn-3"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestServeHTTP(t *testing.T) {
	connections := mocks.NewWebSocketManager(t)
	connections.On("AddConnection", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()
	removed := make(chan struct{})
	connections.On("RemoveConnection", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once().
		Run(func(mock.Arguments) { close(removed) })
	hub := ws.NewHub()
	server := httptest.NewServer(NewHandler(connections, hub))
	defer server.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), ws.Message{Type: ws.MessageTypeLeadUpdate, Payload: ws.LeadUpdatePayload{LeadID: "lead-1"}}))
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lead_id":"lead-1"`)

	client.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	client.Close()
	select {
	case <-removed:
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not removed after the client closed")
	}
	assert.Zero(t, hub.Len())
}
