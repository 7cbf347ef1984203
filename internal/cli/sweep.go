package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dtroode/blackjack-server/internal/maintenance"
)

func newSweepOrphansCmd(a *app) *cobra.Command {
	var (
		olderThan time.Duration
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "sweep-orphans",
		Short: "Delete identities that have no player profile",
		Long: `Deletes authentication identities that no player profile references.

Such identities are left behind when a registration failed and its cleanup
failed too. Only identities older than --older-than are considered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := maintenance.NewSweeper(db, a.logger).SweepOrphans(cmd.Context(), olderThan, dryRun)
			if err != nil {
				return err
			}

			a.out.Print(result)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", time.Hour, "Minimum identity age")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only count orphaned identities")

	return cmd
}
