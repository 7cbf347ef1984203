package cli

import (
	"github.com/spf13/cobra"

	"github.com/dtroode/blackjack-server/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.MigrateDB(cmd.Context(), db); err != nil {
				return err
			}
			version, err := database.Version(db)
			if err != nil {
				return err
			}

			a.out.Print(MigrateResult{Version: version})
			return nil
		},
	}
}
