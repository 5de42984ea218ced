package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage/sqlite"
)

func TestParseTargets(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []ledger.Target
		wantErr string
	}{
		{name: "single", args: []string{"lead-1=500"}, want: []ledger.Target{{LeadId: "lead-1", Amount: 500}}},
		{name: "repeated lead kept for merging", args: []string{"a=1", "a=2"}, want: []ledger.Target{{LeadId: "a", Amount: 1}, {LeadId: "a", Amount: 2}}},
		{name: "missing separator", args: []string{"lead-1"}, wantErr: "expected LEAD_ID=AMOUNT"},
		{name: "empty lead", args: []string{"=5"}, wantErr: "expected LEAD_ID=AMOUNT"},
		{name: "not a number", args: []string{"lead-1=ten"}, wantErr: "invalid amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTargets(tt.args)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newCLI(&out).execute(context.Background(), args)
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "ledger.db")
	t.Setenv("LEDGER_CONFIG", "")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("SQS_QUEUE_URL", "")
	t.Setenv("WEBSOCKET_API_ENDPOINT", "")

	// Seed a pending donation and an open lead.
	ctx := context.Background()
	store, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	svc := ledger.NewService(store, nil)
	seeder := models.Actor{Id: "seed"}
	donation, err := svc.CreateDonation(ctx, ledger.NewDonation{DonorId: "donor-1", Amount: 1000}, seeder)
	require.NoError(t, err)
	lead, err := svc.CreateLead(ctx, ledger.NewLead{Name: "Fatima", HelpRequested: 5000}, seeder)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	t.Run("User Is Required", func(t *testing.T) {
		t.Setenv("LEDGER_USER", "")
		_, err := run(t, "summary")
		assert.ErrorContains(t, err, "--user")
	})

	t.Run("Verify Then Allocate", func(t *testing.T) {
		out, err := run(t, "verify", donation.Id, "--user", "admin-1")
		require.NoError(t, err)
		assert.Contains(t, out, "verified")

		out, err = run(t, "allocate", donation.Id, lead.Id+"=400", lead.Id+"=200", "-u", "admin-1")
		require.NoError(t, err)
		assert.Contains(t, out, "allocated 600 of 1000 (remaining 400)")

		_, err = run(t, "allocate", donation.Id, lead.Id+"=401", "-u", "admin-1")
		assert.ErrorIs(t, err, ledger.ErrOverAllocation)
	})

	t.Run("Summary", func(t *testing.T) {
		out, err := run(t, "summary", "-u", "admin-1")
		require.NoError(t, err)

		var summary ledger.Summary
		require.NoError(t, json.Unmarshal([]byte(out), &summary))
		assert.Equal(t, int64(1000), summary.TotalVerified)
		assert.Equal(t, int64(600), summary.TotalAllocated)
		assert.Equal(t, int64(600), summary.TotalHelpGiven)
	})

	t.Run("Reconcile Finds Nothing", func(t *testing.T) {
		out, err := run(t, "reconcile", "--dry-run", "-u", "admin-1")
		require.NoError(t, err)

		var found []ledger.Discrepancy
		require.NoError(t, json.Unmarshal([]byte(out), &found))
		assert.Empty(t, found)
	})

	t.Run("Datastore Closed After Failure", func(t *testing.T) {
		c := newCLI(&bytes.Buffer{})

		err := c.execute(ctx, []string{"verify", "no-such-donation", "-u", "admin-1"})

		assert.ErrorIs(t, err, ledger.ErrNotFound)
		require.NotNil(t, c.deps)
		_, err = c.deps.Store.GetDonation(ctx, donation.Id)
		assert.ErrorContains(t, err, "closed")
	})
}
