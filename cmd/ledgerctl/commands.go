package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chris/donation-ledger/pkg/bootstrap"
	"github.com/chris/donation-ledger/pkg/config"
	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/models"
)

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	out   io.Writer
	actor models.Actor
	deps  *bootstrap.Deps
	svc   ledger.Ledger
}

func newCLI(out io.Writer) *cli {
	return &cli{out: out}
}

// execute runs one command line. The datastore is released however the
// command ends, including when a subcommand or the setup in
// PersistentPreRunE fails.
func (c *cli) execute(ctx context.Context, args []string) error {
	defer c.close()
	root := c.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (c *cli) close() {
	if c.deps == nil {
		return
	}
	if err := c.deps.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: failed to close datastore:", err)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operate the donation ledger",
		Long:          `Verify donations, allocate them to leads and reconcile lead totals against the configured datastore (see LEDGER_CONFIG and STORAGE_BACKEND).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(c.actor.Id) == "" {
				return fmt.Errorf("--user is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.deps, err = bootstrap.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			// Events are delivered in-process; there are no live clients here.
			publisher, err := c.deps.EventPublisher(cmd.Context(), nil)
			if err != nil {
				return err
			}
			c.svc = c.deps.Service(publisher, nil)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.actor.Id, "user", "u", os.Getenv("LEDGER_USER"), "Acting user id recorded in the activity log")
	flags.StringVar(&c.actor.Name, "name", "", "Acting user display name")
	flags.StringVar(&c.actor.Role, "role", "Admin", "Acting user role")

	root.AddCommand(
		c.verifyCmd(),
		c.failCmd(),
		c.allocateCmd(),
		c.removeAllocationCmd(),
		c.reconcileCmd(),
		c.summaryCmd(),
	)
	return root
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify DONATION_ID",
		Short: "Mark a pending donation as verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.svc.VerifyDonation(cmd.Context(), args[0], c.actor); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Donation %s verified\n", args[0])
			return nil
		},
	}
}

func (c *cli) failCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fail DONATION_ID",
		Short: "Mark a pending donation as failed/incomplete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.svc.MarkDonationFailed(cmd.Context(), args[0], c.actor); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Donation %s marked failed\n", args[0])
			return nil
		},
	}
}

func (c *cli) allocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allocate DONATION_ID LEAD_ID=AMOUNT...",
		Short: "Allocate a verified donation to one or more leads",
		Long:  `Allocate a verified donation. Amounts are in minor currency units; repeated lead ids are summed.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := parseTargets(args[1:])
			if err != nil {
				return err
			}
			donation, err := c.svc.Allocate(cmd.Context(), args[0], targets, c.actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Donation %s: %s, allocated %d of %d (remaining %d)\n",
				donation.Id, donation.Status, donation.AllocatedTotal, donation.Amount, donation.Remaining())
			return nil
		},
	}
}

func (c *cli) removeAllocationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-allocation DONATION_ID ALLOCATION_ID",
		Short: "Reverse a single allocation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			donation, err := c.svc.RemoveAllocation(cmd.Context(), args[0], args[1], c.actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Allocation %s removed; donation %s is %s with %d remaining\n",
				args[1], donation.Id, donation.Status, donation.Remaining())
			return nil
		},
	}
}

func (c *cli) reconcileCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute lead helpGiven from the allocation ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := c.svc.Reconcile(cmd.Context(), dryRun, c.actor)
			if err != nil {
				return err
			}
			return c.writeJSON(found)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report discrepancies without repairing them")
	return cmd
}

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the financial summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := c.svc.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return c.writeJSON(summary)
		},
	}
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseTargets reads LEAD_ID=AMOUNT arguments.
func parseTargets(args []string) ([]ledger.Target, error) {
	targets := make([]ledger.Target, 0, len(args))
	for _, arg := range args {
		leadID, amount, ok := strings.Cut(arg, "=")
		if !ok || leadID == "" {
			return nil, fmt.Errorf("invalid target %q, expected LEAD_ID=AMOUNT", arg)
		}
		n, err := strconv.ParseInt(amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %w", arg, err)
		}
		targets = append(targets, ledger.Target{LeadId: leadID, Amount: n})
	}
	return targets, nil
}
