package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runnerr0/timecraft/internal/logging"
)

type archiveJSON struct {
	ImportID  string `json:"import_id"`
	Source    string `json:"source"`
	Parsed    int    `json:"parsed"`
	Added     int64  `json:"added"`
	Skipped   int64  `json:"skipped"`
	Dropped   int    `json:"dropped_lines"`
	Unstamped int    `json:"unstamped"`
}

// Execute implements the go-flags Commander interface for ArchiveCommand.
func (c *ArchiveCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

// executeWithEnv always reads the history file; --source does not apply.
// Records with out-of-range epochs are not archived.
func (c *ArchiveCommand) executeWithEnv(e *env) error {
	ctx := context.Background()

	p := e.parser()
	p.DropClockFallbacks = true
	records, stats, err := e.readHistory(p)
	if err != nil {
		return err
	}

	store, closeStore, err := e.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	run, err := store.Import(ctx, e.historyPath, records)
	if err != nil {
		return fmt.Errorf("archive history: %w", err)
	}

	logging.Component(e.logger, "archive").Info("imported history",
		slog.String("import_id", run.ID),
		slog.Int64("added", run.Added),
		slog.Int64("skipped", run.Skipped),
	)

	if c.globals.JSON {
		return printJSON(archiveJSON{
			ImportID:  run.ID,
			Source:    run.Source,
			Parsed:    len(records),
			Added:     run.Added,
			Skipped:   run.Skipped,
			Dropped:   stats.Skipped,
			Unstamped: stats.ClockFallbacks,
		})
	}

	fmt.Printf("Archived %s new commands from %s (%s already archived).\n",
		bold(count(int(run.Added))), e.historyPath, count(int(run.Skipped)))
	if stats.Skipped > 0 {
		fmt.Printf("%s lines were not history records and were ignored.\n", count(stats.Skipped))
	}
	if stats.ClockFallbacks > 0 {
		fmt.Printf("%s commands had out-of-range timestamps and were not archived.\n", count(stats.ClockFallbacks))
	}
	return nil
}
