package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	ctx := context.Background()

	t.Run("Full allocation across two leads", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 1000)
		lead1, lead2, lead3 := f.lead(t, "one"), f.lead(t, "two"), f.lead(t, "three")

		got, err := f.svc.Allocate(ctx, d.Id, []Target{{lead1.Id, 600}, {lead2.Id, 400}}, admin)
		require.NoError(t, err)
		assert.Equal(t, models.ALLOCATED, got.Status)
		assert.Len(t, got.Allocations, 2)
		assert.Equal(t, int64(600), f.helpGiven(t, lead1.Id))
		assert.Equal(t, int64(400), f.helpGiven(t, lead2.Id))

		stored, err := f.store.GetDonation(ctx, d.Id)
		require.NoError(t, err)
		assert.Equal(t, models.ALLOCATED, stored.Status)
		assert.Len(t, stored.Allocations, 2)

		allocated := 0
		for _, a := range f.activities(t) {
			if a == "Donation Allocated" {
				allocated++
			}
		}
		assert.Equal(t, 1, allocated)

		_, err = f.svc.Allocate(ctx, d.Id, []Target{{lead3.Id, 1}}, admin)
		assert.ErrorIs(t, err, ErrOverAllocation)
		assert.Equal(t, int64(0), f.helpGiven(t, lead3.Id))
	})

	t.Run("Status follows the remaining balance", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 500)
		lead1, lead2 := f.lead(t, "one"), f.lead(t, "two")

		got, err := f.svc.Allocate(ctx, d.Id, []Target{{lead1.Id, 200}}, admin)
		require.NoError(t, err)
		assert.Equal(t, models.VERIFIED, got.Status)
		assert.Equal(t, int64(300), got.Remaining())

		got, err = f.svc.Allocate(ctx, d.Id, []Target{{lead2.Id, 300}}, admin)
		require.NoError(t, err)
		assert.Equal(t, models.ALLOCATED, got.Status)
		assert.Equal(t, int64(0), got.Remaining())
	})

	t.Run("Over allocation leaves state unchanged", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 500)
		lead1, lead2 := f.lead(t, "one"), f.lead(t, "two")
		before := f.activities(t)

		_, err := f.svc.Allocate(ctx, d.Id, []Target{{lead1.Id, 300}, {lead2.Id, 201}}, admin)
		assert.ErrorIs(t, err, ErrOverAllocation)

		stored, err := f.store.GetDonation(ctx, d.Id)
		require.NoError(t, err)
		assert.Empty(t, stored.Allocations)
		assert.Equal(t, models.VERIFIED, stored.Status)
		assert.Equal(t, int64(0), f.helpGiven(t, lead1.Id))
		assert.Equal(t, before, f.activities(t))
	})

	t.Run("Duplicate targets merge into one allocation", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 1000)
		leadA := f.lead(t, "A")

		got, err := f.svc.Allocate(ctx, d.Id, []Target{{leadA.Id, 100}, {leadA.Id, 50}}, admin)
		require.NoError(t, err)
		require.Len(t, got.Allocations, 1)
		assert.Equal(t, int64(150), got.Allocations[0].Amount)
		assert.Equal(t, int64(150), f.helpGiven(t, leadA.Id))
	})

	t.Run("Pending donation cannot be allocated", func(t *testing.T) {
		f := newFixture(t)
		d, err := f.svc.CreateDonation(ctx, NewDonation{DonorId: "donor-1", Amount: 100}, admin)
		require.NoError(t, err)
		l := f.lead(t, "one")

		_, err = f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 10}}, admin)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Missing donation and lead", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 100)
		l := f.lead(t, "one")

		_, err := f.svc.Allocate(ctx, "missing", []Target{{l.Id, 10}}, admin)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 10}, {"ghost", 10}}, admin)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, int64(0), f.helpGiven(t, l.Id))
	})

	t.Run("Closed lead is refused", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 100)
		l := f.lead(t, "one")
		closed := models.LeadClosed
		_, err := f.svc.UpdateLead(ctx, l.Id, LeadUpdate{Status: &closed}, admin)
		require.NoError(t, err)

		_, err = f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 10}}, admin)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Lead closed by case action is refused", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 100)
		l := f.lead(t, "one")
		closed := models.LeadClosed
		_, err := f.svc.UpdateLead(ctx, l.Id, LeadUpdate{CaseAction: &closed}, admin)
		require.NoError(t, err)

		_, err = f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 10}}, admin)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, int64(0), f.helpGiven(t, l.Id))
	})

	t.Run("Invalid targets are rejected before any read", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Allocate(ctx, "missing", []Target{{"lead", -1}}, admin)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Side-effect failures do not undo the allocation", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 100)
		l := f.lead(t, "one")

		publisher := &recordingPublisher{err: errors.New("queue down")}
		svc := NewService(failingAuditStore{f.store}, publisher)

		got, err := svc.Allocate(ctx, d.Id, []Target{{l.Id, 100}}, admin)
		require.NoError(t, err)
		assert.Equal(t, models.ALLOCATED, got.Status)
		assert.Equal(t, int64(100), f.helpGiven(t, l.Id))
		assert.Equal(t, []notify.EventType{notify.DonationAllocated}, publisher.types())
	})
}

func TestAllocateConcurrently(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithMaxRetries(20))
	d := f.verifiedDonation(t, 1000)
	leads := []*models.Lead{f.lead(t, "one"), f.lead(t, "two"), f.lead(t, "three")}

	var wg sync.WaitGroup
	errs := make([]error, 12)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Allocate(ctx, d.Id, []Target{{leads[i%len(leads)].Id, 100}}, admin)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, ErrOverAllocation) || errors.Is(err, ErrPersistence), err.Error())
	}

	stored, err := f.store.GetDonation(ctx, d.Id)
	require.NoError(t, err)
	assert.LessOrEqual(t, stored.AllocatedTotal, stored.Amount)
	assert.Len(t, stored.Allocations, succeeded)
	assert.Equal(t, int64(succeeded*100), stored.AllocatedTotal)

	sums := f.allocationSums(t)
	for _, l := range leads {
		assert.Equal(t, sums[l.Id], f.helpGiven(t, l.Id))
	}
}

func TestAggregateConsistency(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	leads := []*models.Lead{f.lead(t, "one"), f.lead(t, "two"), f.lead(t, "three")}
	d1 := f.verifiedDonation(t, 1000)
	d2 := f.verifiedDonation(t, 700)

	steps := []struct {
		donation string
		targets  []Target
	}{
		{d1.Id, []Target{{leads[0].Id, 250}, {leads[1].Id, 250}}},
		{d2.Id, []Target{{leads[0].Id, 100}, {leads[2].Id, 100}, {leads[0].Id, 50}}},
		{d1.Id, []Target{{leads[2].Id, 600}}},
		{d2.Id, []Target{{leads[1].Id, 1000}}},
		{d1.Id, []Target{{leads[1].Id, 500}}},
	}
	for _, step := range steps {
		_, _ = f.svc.Allocate(ctx, step.donation, step.targets, admin)
	}

	removed, err := f.store.GetDonation(ctx, d2.Id)
	require.NoError(t, err)
	require.NotEmpty(t, removed.Allocations)
	_, err = f.svc.RemoveAllocation(ctx, d2.Id, removed.Allocations[0].Id, admin)
	require.NoError(t, err)

	sums := f.allocationSums(t)
	for _, l := range leads {
		assert.Equal(t, sums[l.Id], f.helpGiven(t, l.Id), "lead %s", l.Name)
	}

	for _, id := range []string{d1.Id, d2.Id} {
		d, err := f.store.GetDonation(ctx, id)
		require.NoError(t, err)
		assert.LessOrEqual(t, d.AllocatedTotal, d.Amount)
		if d.Remaining() == 0 {
			assert.Equal(t, models.ALLOCATED, d.Status)
		} else {
			assert.Equal(t, models.VERIFIED, d.Status)
		}
	}
}

func TestRemoveAllocation(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns an allocated donation to verified", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 500)
		l1, l2 := f.lead(t, "one"), f.lead(t, "two")
		allocated, err := f.svc.Allocate(ctx, d.Id, []Target{{l1.Id, 200}, {l2.Id, 300}}, admin)
		require.NoError(t, err)
		require.Equal(t, models.ALLOCATED, allocated.Status)

		got, err := f.svc.RemoveAllocation(ctx, d.Id, allocated.Allocations[1].Id, admin)
		require.NoError(t, err)
		assert.Equal(t, models.VERIFIED, got.Status)
		assert.Equal(t, int64(300), got.Remaining())
		require.Len(t, got.Allocations, 1)
		assert.Equal(t, l1.Id, got.Allocations[0].LeadId)
		assert.Equal(t, int64(0), f.helpGiven(t, l2.Id))
		assert.Equal(t, int64(200), f.helpGiven(t, l1.Id))
		assert.Contains(t, f.activities(t), "Allocation Removed")
	})

	t.Run("Unknown allocation", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 500)
		_, err := f.svc.RemoveAllocation(ctx, d.Id, "nope", admin)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Pending donation", func(t *testing.T) {
		f := newFixture(t)
		d, err := f.svc.CreateDonation(ctx, NewDonation{DonorId: "donor-1", Amount: 100}, admin)
		require.NoError(t, err)
		_, err = f.svc.RemoveAllocation(ctx, d.Id, "nope", admin)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}
