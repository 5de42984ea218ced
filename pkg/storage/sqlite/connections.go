package sqlite

import (
	"context"
	"fmt"
	"time"
)

// AddConnection registers a live websocket client.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO websocket_connections (connection_id, connected_at) VALUES (?, ?)
		ON CONFLICT(connection_id) DO UPDATE SET connected_at = excluded.connected_at
	`, connectionID, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to add connection: %w", err)
	}
	return nil
}

// RemoveConnection forgets a websocket client. Unknown ids are ignored.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM websocket_connections WHERE connection_id = ?`, connectionID); err != nil {
		return fmt.Errorf("failed to remove connection: %w", err)
	}
	return nil
}

// GetAllConnections lists every registered connection id.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT connection_id FROM websocket_connections ORDER BY connected_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
