package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/chris/donation-ledger/pkg/storage/sqlite"
	"github.com/stretchr/testify/require"
)

var (
	admin    = models.Actor{Id: "admin-1", Name: "Admin", Role: "Admin"}
	baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
)

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event notify.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []notify.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notify.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// failingAuditStore is a store whose activity log is unavailable.
type failingAuditStore struct {
	*sqlite.Store
}

func (s failingAuditStore) AppendActivity(ctx context.Context, entry *models.ActivityLogEntry) error {
	return errors.New("activity table unavailable")
}

type fixture struct {
	svc       *Service
	store     *sqlite.Store
	publisher *recordingPublisher
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	publisher := &recordingPublisher{}
	var mu sync.Mutex
	clock := baseTime
	opts = append([]Option{WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	})}, opts...)

	return &fixture{svc: NewService(store, publisher, opts...), store: store, publisher: publisher}
}

func (f *fixture) verifiedDonation(t *testing.T, amount int64) *models.Donation {
	t.Helper()
	ctx := context.Background()
	d, err := f.svc.CreateDonation(ctx, NewDonation{DonorId: "donor-1", DonorName: "Asha", Amount: amount, Type: "Sadqa", PaymentMethod: "UPI"}, admin)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyDonation(ctx, d.Id, admin))
	return d
}

func (f *fixture) lead(t *testing.T, name string) *models.Lead {
	t.Helper()
	l, err := f.svc.CreateLead(context.Background(), NewLead{Name: name, Purpose: "Education", HelpRequested: 100000}, admin)
	require.NoError(t, err)
	return l
}

func (f *fixture) helpGiven(t *testing.T, leadID string) int64 {
	t.Helper()
	l, err := f.store.GetLead(context.Background(), leadID)
	require.NoError(t, err)
	return l.HelpGiven
}

func (f *fixture) activities(t *testing.T) []string {
	t.Helper()
	entries, err := f.store.ListActivity(context.Background(), 1000)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[len(entries)-1-i] = e.Activity
	}
	return names
}

// allocationSums returns Σ allocations per lead across every donation.
func (f *fixture) allocationSums(t *testing.T) map[string]int64 {
	t.Helper()
	donations, err := f.store.ListDonations(context.Background(), "")
	require.NoError(t, err)
	sums := map[string]int64{}
	for _, d := range donations {
		for _, a := range d.Allocations {
			sums[a.LeadId] += a.Amount
		}
	}
	return sums
}
