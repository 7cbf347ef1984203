package cli

import (
	"github.com/spf13/cobra"
)

func newLeaderboardCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top players by bankroll",
		RunE: func(cmd *cobra.Command, args []string) error {
			lb, closeFn, err := a.backend.Leaderboard(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			entries, err := lb.Top(cmd.Context(), limit)
			if err != nil {
				return err
			}

			a.out.Print(entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of players (default from LEADERBOARD_DEFAULT_LIMIT)")

	return cmd
}
