package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateLead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	l, err := f.svc.CreateLead(ctx, NewLead{Name: "Fees", HelpRequested: 2000}, admin)
	require.NoError(t, err)
	assert.Equal(t, models.LeadPending, l.Status)
	assert.Equal(t, int64(0), l.HelpGiven)
	assert.Equal(t, admin.Id, l.CreatedById)

	_, err = f.svc.CreateLead(ctx, NewLead{Name: "", HelpRequested: 10}, admin)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = f.svc.CreateLead(ctx, NewLead{Name: "x", HelpRequested: 0}, admin)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateLead(t *testing.T) {
	ctx := context.Background()
	due := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Logs only effective changes", func(t *testing.T) {
		f := newFixture(t)
		l, err := f.svc.CreateLead(ctx, NewLead{Name: "Fees", Purpose: "Education", DegreeTags: []string{"MBBS", "Year 1"}, HelpRequested: 2000}, admin)
		require.NoError(t, err)

		updated, err := f.svc.UpdateLead(ctx, l.Id, LeadUpdate{
			Name:       ptr("Fees"),
			DegreeTags: ptr([]string{"Year 1", "MBBS"}),
			Status:     ptr(models.LeadReadyForHelp),
			DueDate:    &due,
		}, admin)
		require.NoError(t, err)
		assert.Equal(t, models.LeadReadyForHelp, updated.Status)
		assert.Equal(t, int64(2), updated.Version)

		entries, err := f.store.ListActivity(ctx, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Lead Updated", entries[0].Activity)
		assert.Equal(t, l.Id, entries[0].Details["leadId"])

		changes, ok := entries[0].Details["changes"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, changes, 2)
		assert.Equal(t, map[string]any{"from": "Pending", "to": "Ready For Help"}, changes["status"])
		assert.Equal(t, map[string]any{"from": "", "to": "2024-06-30T00:00:00Z"}, changes["dueDate"])

		assert.Contains(t, f.publisher.types(), notify.LeadUpdated)
	})

	t.Run("No-op update writes nothing", func(t *testing.T) {
		f := newFixture(t)
		l, err := f.svc.CreateLead(ctx, NewLead{Name: "Fees", HelpRequested: 2000}, admin)
		require.NoError(t, err)
		before := f.activities(t)

		got, err := f.svc.UpdateLead(ctx, l.Id, LeadUpdate{Name: ptr("Fees"), HelpRequested: ptr(int64(2000))}, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Version)
		assert.Equal(t, before, f.activities(t))
	})

	t.Run("Does not disturb help given", func(t *testing.T) {
		f := newFixture(t)
		d := f.verifiedDonation(t, 1000)
		l := f.lead(t, "one")
		_, err := f.svc.Allocate(ctx, d.Id, []Target{{l.Id, 400}}, admin)
		require.NoError(t, err)

		_, err = f.svc.UpdateLead(ctx, l.Id, LeadUpdate{HelpRequested: ptr(int64(5000))}, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(400), f.helpGiven(t, l.Id))
	})

	t.Run("Validation", func(t *testing.T) {
		f := newFixture(t)
		l := f.lead(t, "one")

		_, err := f.svc.UpdateLead(ctx, l.Id, LeadUpdate{Name: ptr(" ")}, admin)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = f.svc.UpdateLead(ctx, l.Id, LeadUpdate{Status: ptr(models.LeadStatus("Archived"))}, admin)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = f.svc.UpdateLead(ctx, "missing", LeadUpdate{Name: ptr("x")}, admin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
