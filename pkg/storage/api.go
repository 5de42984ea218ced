package storage

// ApiStore defines the set of non-ledger operations needed by the API.
// It composes other interfaces to provide a clear boundary for the API's data access.
type ApiStore interface {
	DonationStore
	LeadStore
	ActivityReader
}
