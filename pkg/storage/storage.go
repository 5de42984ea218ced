package storage

import "context"

// Storage is the ledger's complete data layer: donations, leads, the allocation
// writer and the activity log. Handlers and jobs should accept the narrowest
// interface they need (DonationReader, ApiStore, ...) rather than this one.
type Storage interface {
	ApiStore
	AllocationWriter
	ActivityLog
}

// WebSocketManager is the registry of clients subscribed to live ledger updates.
type WebSocketManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}

// Backend is what a datastore implementation provides to the binaries.
type Backend interface {
	Storage
	WebSocketManager
}
