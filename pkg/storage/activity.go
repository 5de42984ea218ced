package storage

import (
	"context"

	"github.com/chris/donation-ledger/pkg/models"
)

// ActivityReader defines the interface for reading the audit trail.
type ActivityReader interface {
	// ListActivity retrieves the most recent activity log entries, newest first.
	ListActivity(ctx context.Context, limit int32) ([]models.ActivityLogEntry, error)
}

// ActivityLog is the append-only audit trail. Entries are never updated or deleted.
type ActivityLog interface {
	ActivityReader
	AppendActivity(ctx context.Context, entry *models.ActivityLogEntry) error
}
