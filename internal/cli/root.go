// Package cli implements the blackjack-admin command line tool.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dtroode/blackjack-server/internal/config"
	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
	"github.com/dtroode/blackjack-server/internal/repository/postgres"
	"github.com/dtroode/blackjack-server/internal/service"
)

// LeaderboardReader returns the top of the leaderboard.
type LeaderboardReader interface {
	Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

// Backend opens the stores commands work against.
type Backend struct {
	OpenDB      func(dsn string) (*sql.DB, error)
	Leaderboard func(ctx context.Context, cfg *config.Config) (LeaderboardReader, func(), error)
}

// DefaultBackend connects to the Postgres database named by the config.
func DefaultBackend() Backend {
	return Backend{
		OpenDB: func(dsn string) (*sql.DB, error) {
			return sql.Open("pgx", dsn)
		},
		Leaderboard: func(ctx context.Context, cfg *config.Config) (LeaderboardReader, func(), error) {
			conn, err := postgres.NewConnection(ctx, cfg.Database.DSN, postgres.WithoutMigrations())
			if err != nil {
				return nil, nil, err
			}
			lb := service.NewLeaderboard(postgres.NewPlayerRepository(conn), cfg.Leaderboard.DefaultLimit, cfg.Leaderboard.MaxLimit)
			return lb, func() { _ = conn.Close() }, nil
		},
	}
}

type app struct {
	backend Backend
	cfg     *config.Config
	logger  *logger.Logger
	out     *Output
	dsn     string
	format  string
}

// NewRootCmd creates the root command.
func NewRootCmd(backend Backend, stdout io.Writer) *cobra.Command {
	a := &app{backend: backend}

	rootCmd := &cobra.Command{
		Use:   "blackjack-admin",
		Short: "Administrative tasks for the blackjack server",
		Long: `blackjack-admin runs maintenance against the blackjack server database.

Configuration is read from the same environment variables as the server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if a.dsn != "" {
				cfg.Database.DSN = a.dsn
			}
			a.cfg = cfg
			a.logger = logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			a.out = NewOutput(a.format, stdout)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.dsn, "dsn", "", "Postgres DSN (env: DATABASE_DSN)")
	rootCmd.PersistentFlags().StringVarP(&a.format, "output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(newMigrateCmd(a))
	rootCmd.AddCommand(newSweepOrphansCmd(a))
	rootCmd.AddCommand(newLeaderboardCmd(a))

	return rootCmd
}

// Execute runs the root command against the real database.
func Execute() {
	if err := NewRootCmd(DefaultBackend(), os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) openDB() (*sql.DB, error) {
	db, err := a.backend.OpenDB(a.cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
