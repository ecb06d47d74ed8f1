package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/timecraft/internal/history"
	"github.com/runnerr0/timecraft/internal/storage"
)

type replayEntryJSON struct {
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

type replayJSON struct {
	Date     string            `json:"date"`
	Commands []replayEntryJSON `json:"commands"`
}

// Execute implements the go-flags Commander interface for ReplayCommand.
func (c *ReplayCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

func (c *ReplayCommand) executeWithEnv(e *env) error {
	delay := e.cfg.ReplayDelay()
	if c.Delay != "" {
		d, err := time.ParseDuration(c.Delay)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid --delay %q", c.Delay)
		}
		delay = d
	}

	entries, err := c.entries(e)
	if err != nil {
		return err
	}

	if c.globals.JSON {
		out := replayJSON{Date: c.Args.Date, Commands: make([]replayEntryJSON, len(entries))}
		for i, rec := range entries {
			out.Commands[i] = replayEntryJSON{
				Timestamp: rec.Timestamp.Format(time.RFC3339),
				Command:   rec.Command,
			}
		}
		return printJSON(out)
	}

	sleep := c.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	fmt.Printf("⏪ Replaying commands from %s:\n", cyan(c.Args.Date))
	for _, rec := range entries {
		fmt.Printf("%s %s\n", green("→"), rec.Command)
		if delay > 0 {
			sleep(delay)
		}
	}
	return nil
}

// entries returns the day's records from the selected source. The date is
// validated before any file or database is touched.
func (c *ReplayCommand) entries(e *env) ([]history.Record, error) {
	day, err := history.ParseDate(c.Args.Date, e.loc)
	if err != nil {
		return nil, err
	}

	if e.globals.Source == sourceArchive {
		return e.archivedRecords(context.Background(), storage.Query{
			Since: day,
			Until: day.AddDate(0, 0, 1),
		})
	}
	return e.parser().EntriesForDate(c.Args.Date)
}
