package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chris/donation-ledger/pkg/models"
)

// AppendActivity inserts an audit entry. Existing entries are never touched.
func (s *Store) AppendActivity(ctx context.Context, entry *models.ActivityLogEntry) error {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}
	b, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode activity details: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, user_id, user_name, role, activity, details, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.Id, entry.UserId, entry.UserName, entry.Role, entry.Activity, string(b), formatTime(entry.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// ListActivity returns the most recent entries, newest first.
func (s *Store) ListActivity(ctx context.Context, limit int32) ([]models.ActivityLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, user_name, role, activity, details, timestamp
		FROM activity_log ORDER BY seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []models.ActivityLogEntry{}
	for rows.Next() {
		var (
			e                  models.ActivityLogEntry
			details, timestamp string
		)
		if err := rows.Scan(&e.Id, &e.UserId, &e.UserName, &e.Role, &e.Activity, &details, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
			return nil, fmt.Errorf("failed to decode activity details: %w", err)
		}
		if e.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity: %w", err)
	}
	return entries, nil
}
