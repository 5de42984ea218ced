package websockets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// hubConn serializes writes to one connection; gorilla allows a single
// concurrent writer per connection.
type hubConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *hubConn) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub holds websocket connections accepted by the local development server
// and publishes messages to them directly.
type Hub struct {
	mu    sync.Mutex
	conns map[string]*hubConn
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*hubConn)}
}

// Attach registers a connection under id.
func (h *Hub) Attach(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = &hubConn{conn: conn}
}

// Detach forgets the connection with the given id.
func (h *Hub) Detach(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

// Len returns the number of attached connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Publish writes the message to every attached connection in parallel and
// waits for the writes to finish. The hub lock is only held to take a
// snapshot, so a slow client delays neither Attach nor Detach nor the
// other clients. Connections that fail a write are closed and dropped.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	h.mu.Lock()
	snapshot := make(map[string]*hubConn, len(h.conns))
	for id, c := range h.conns {
		snapshot[id] = c
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for id, c := range snapshot {
		wg.Add(1)
		go func(id string, c *hubConn) {
			defer wg.Done()
			if err := c.write(payload); err != nil {
				slog.Error("failed to write to local connection, dropping it", "connectionId", id, "error", err)
				c.conn.Close()
				h.drop(id, c)
			}
		}(id, c)
	}
	wg.Wait()
	return nil
}

// drop removes id only if it still refers to c; the client may have
// reconnected under the same id while the write was in flight.
func (h *Hub) drop(id string, c *hubConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[id] == c {
		delete(h.conns, id)
	}
}
