package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dtroode/blackjack-server/internal/api/http/response"
	"github.com/dtroode/blackjack-server/internal/maintenance"
	"github.com/dtroode/blackjack-server/internal/model"
)

// MigrateResult reports the schema version after migrating.
type MigrateResult struct {
	Version int64 `json:"version"`
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}

	switch v := data.(type) {
	case MigrateResult:
		fmt.Fprintf(o.w, "Schema at version %d\n", v.Version)
	case maintenance.SweepResult:
		o.printSweep(v)
	case []model.LeaderboardEntry:
		o.printLeaderboard(v)
	default:
		o.printJSON(data)
	}
}

func (o *Output) printJSON(data any) {
	if entries, ok := data.([]model.LeaderboardEntry); ok {
		data = response.LeaderboardFromModel(entries)
	}
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printSweep(r maintenance.SweepResult) {
	if r.DryRun {
		fmt.Fprintf(o.w, "Found %d orphaned identities created before %s (dry run)\n", r.Found, r.Cutoff.Format("2006-01-02 15:04:05"))
		return
	}
	fmt.Fprintf(o.w, "Deleted %d of %d orphaned identities created before %s\n", r.Deleted, r.Found, r.Cutoff.Format("2006-01-02 15:04:05"))
}

func (o *Output) printLeaderboard(entries []model.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(o.w, "No players yet")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tBANKROLL\tHANDS\tWIN RATE\tBIGGEST WIN")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.1f%%\t%s\n",
			i+1, e.Username, e.Bankroll.StringFixed(2), e.TotalHandsPlayed, e.WinRate, e.BiggestWin.StringFixed(2))
	}
	_ = tw.Flush()
}
