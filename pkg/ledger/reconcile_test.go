package ledger

import (
	"context"
	"testing"

	"github.com/chris/donation-ledger/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("Consistent ledger has no discrepancies", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 1000)
		l := f.lead(t, "one")
		_, err := f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 300}}, admin)
		require.NoError(t, err)

		found, err := f.svc.Reconcile(ctx, false, admin)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("Dry run reports, repair fixes", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 1000)
		l := f.lead(t, "one")
		_, err := f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 300}}, admin)
		require.NoError(t, err)

		drifted, err := f.store.GetLead(ctx, l.Id)
		require.NoError(t, err)
		require.NoError(t, f.store.SetHelpGiven(ctx, l.Id, drifted.Version, 999))

		found, err := f.svc.Reconcile(ctx, true, admin)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, Discrepancy{LeadId: l.Id, Recorded: 999, Expected: 300}, found[0])
		assert.Equal(t, int64(999), f.helpGiven(t, l.Id))

		found, err = f.svc.Reconcile(ctx, false, admin)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.True(t, found[0].Repaired)
		assert.Equal(t, int64(300), f.helpGiven(t, l.Id))
		assert.Contains(t, f.activities(t), "Lead HelpGiven Reconciled")

		found, err = f.svc.Reconcile(ctx, false, admin)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("Allocations to unknown leads are reported", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 100)
		l := f.lead(t, "one")
		_, err := f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 100}}, admin)
		require.NoError(t, err)

		svc := NewService(leadlessStore{failingAuditStore{f.store}}, nil)
		found, err := svc.Reconcile(ctx, true, admin)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.True(t, found[0].Missing)
		assert.Equal(t, int64(100), found[0].Expected)
	})
}

// leadlessStore hides every lead, as if the lead table had been emptied.
type leadlessStore struct {
	failingAuditStore
}

func (s leadlessStore) ListLeads(ctx context.Context) ([]models.Lead, error) {
	return []models.Lead{}, nil
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d := f.verifiedDonation(t, 1000)
	l := f.lead(t, "one")
	_, err := f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 250}}, admin)
	require.NoError(t, err)

	_, err = f.svc.CreateDonation(ctx, NewDonation{DonorId: "donor-2", Amount: 300}, admin)
	require.NoError(t, err)
	failed, err := f.svc.CreateDonation(ctx, NewDonation{DonorId: "donor-3", Amount: 50}, admin)
	require.NoError(t, err)
	require.NoError(t, f.svc.MarkDonationFailed(ctx, failed.Id, admin))

	sum, err := f.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Summary{
		TotalDonated:        1300,
		TotalVerified:       1000,
		TotalAllocated:      250,
		UnallocatedVerified: 750,
		PendingCount:        1,
		PendingAmount:       300,
		FailedCount:         1,
		LeadCount:           1,
		OpenLeadCount:       1,
		TotalRequested:      100000,
		TotalHelpGiven:      250,
	}, sum)
}
