// Package maintenance holds out-of-band cleanup jobs run from the admin CLI.
package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dtroode/blackjack-server/internal/logger"
)

// orphanFilter matches identities that no player references. Provisioning
// leaves such rows behind only when a compensating delete failed.
const orphanFilter = `FROM identities i
WHERE i.created_at < $1
  AND NOT EXISTS (SELECT 1 FROM players p WHERE p.user_id = i.id)`

// Sweeper removes identities orphaned by failed provisioning.
type Sweeper struct {
	db     *sql.DB
	now    func() time.Time
	logger *logger.Logger
}

// NewSweeper creates a Sweeper over db.
func NewSweeper(db *sql.DB, logger *logger.Logger) *Sweeper {
	return &Sweeper{db: db, now: time.Now, logger: logger}
}

// SweepResult reports what a sweep found and removed.
type SweepResult struct {
	Cutoff  time.Time `json:"cutoff"`
	Found   int64     `json:"found"`
	Deleted int64     `json:"deleted"`
	DryRun  bool      `json:"dry_run"`
}

// SweepOrphans deletes orphaned identities created before now minus olderThan.
// With dryRun set it only counts them. The age cutoff keeps the sweep away
// from identities whose provisioning is still in flight.
func (s *Sweeper) SweepOrphans(ctx context.Context, olderThan time.Duration, dryRun bool) (SweepResult, error) {
	if olderThan <= 0 {
		return SweepResult{}, fmt.Errorf("older-than must be positive, got %s", olderThan)
	}

	result := SweepResult{Cutoff: s.now().UTC().Add(-olderThan), DryRun: dryRun}

	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+orphanFilter, result.Cutoff).Scan(&result.Found); err != nil {
		return SweepResult{}, fmt.Errorf("failed to count orphaned identities: %w", err)
	}

	if dryRun || result.Found == 0 {
		s.logger.InfoContext(ctx, "Sweeper: orphaned identities counted",
			"found", result.Found,
			"cutoff", result.Cutoff,
			"dry_run", dryRun)
		return result, nil
	}

	res, err := s.db.ExecContext(ctx, `DELETE `+orphanFilter, result.Cutoff)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to delete orphaned identities: %w", err)
	}
	result.Deleted, err = res.RowsAffected()
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to read deleted rows: %w", err)
	}

	s.logger.InfoContext(ctx, "Sweeper: orphaned identities deleted",
		"found", result.Found,
		"deleted", result.Deleted,
		"cutoff", result.Cutoff)

	return result, nil
}
