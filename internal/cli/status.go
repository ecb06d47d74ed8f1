package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/runnerr0/timecraft/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string             `json:"version"`
	HistoryPath       string             `json:"history_path"`
	HistoryFound      bool               `json:"history_found"`
	HistorySizeBytes  int64              `json:"history_size_bytes"`
	Lines             int                `json:"lines"`
	Records           int                `json:"records"`
	SkippedLines      int                `json:"skipped_lines"`
	ClockFallbacks    int                `json:"clock_fallbacks"`
	DatabasePath      string             `json:"database_path"`
	DatabaseSizeBytes int64              `json:"database_size_bytes"`
	ArchivedCommands  int64              `json:"archived_commands"`
	DistinctCommands  int64              `json:"distinct_commands"`
	OldestCommand     string             `json:"oldest_command,omitempty"`
	NewestCommand     string             `json:"newest_command,omitempty"`
	Imports           int64              `json:"imports"`
	LastImport        *storage.ImportRun `json:"last_import,omitempty"`
	TopCommandLines   []commandLineJSON  `json:"top_command_lines"`
}

type commandLineJSON struct {
	Command string `json:"command"`
	Count   int64  `json:"count"`
}

// historyStatus summarizes the history file for status output.
type historyStatus struct {
	found          bool
	sizeBytes      int64
	lines          int
	records        int
	skipped        int
	clockFallbacks int
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

// executeWithEnv reports a missing history file instead of failing, so
// status stays useful before the first shell session.
func (c *StatusCommand) executeWithEnv(e *env) error {
	ctx := context.Background()

	hist, err := c.historyStatus(e)
	if err != nil {
		return err
	}

	store, closeStore, err := e.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}
	dbSize := getDatabaseSize(e.dbPath, stats.DatabaseSizeBytes)

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(e, hist, stats, dbSize)
	}
	return c.printStatusHuman(e, hist, stats, dbSize)
}

func (c *StatusCommand) historyStatus(e *env) (historyStatus, error) {
	var hs historyStatus

	info, err := os.Stat(e.historyPath)
	if errors.Is(err, os.ErrNotExist) {
		return hs, nil
	}
	if err != nil {
		return hs, fmt.Errorf("stat history file: %w", err)
	}

	_, stats, err := e.readHistory(nil)
	if err != nil {
		return hs, err
	}

	return historyStatus{
		found:          true,
		sizeBytes:      info.Size(),
		lines:          stats.Lines,
		records:        stats.Records,
		skipped:        stats.Skipped,
		clockFallbacks: stats.ClockFallbacks,
	}, nil
}

func (c *StatusCommand) printStatusHuman(e *env, hist historyStatus, stats *storage.Stats, dbSize int64) error {
	fmt.Println(bold("timecraft status"))
	fmt.Println("================")
	fmt.Printf("Version:       %s\n", c.version)

	if hist.found {
		fmt.Printf("History:       %s (%s)\n", e.historyPath, humanize.Bytes(uint64(hist.sizeBytes)))
		fmt.Printf("Records:       %s of %s lines\n", count(hist.records), count(hist.lines))
		if hist.skipped > 0 {
			fmt.Printf("Skipped:       %s lines\n", count(hist.skipped))
		}
		if hist.clockFallbacks > 0 {
			fmt.Printf("Bad times:     %s records used the current time\n", count(hist.clockFallbacks))
		}
	} else {
		fmt.Printf("History:       %s (%s)\n", e.historyPath, yellow("not found"))
	}

	fmt.Println()
	fmt.Printf("Archive:       %s (%s)\n", e.dbPath, humanize.Bytes(uint64(dbSize)))
	fmt.Printf("Commands:      %s (%s distinct)\n",
		humanize.Comma(stats.TotalCommands), humanize.Comma(stats.DistinctCommands))

	// Time range
	if stats.TotalCommands > 0 {
		fmt.Printf("Oldest:        %s\n", stats.Oldest.In(e.loc).Format("2006-01-02"))
		fmt.Printf("Newest:        %s\n", stats.Newest.In(e.loc).Format("2006-01-02"))
	}

	if stats.LastImport != nil {
		fmt.Printf("Last import:   %s (+%s)\n",
			humanize.RelTime(stats.LastImport.StartedAt, e.now(), "ago", "from now"),
			humanize.Comma(stats.LastImport.Added))
	} else {
		fmt.Println("Last import:   never")
	}

	if len(stats.TopCommandLines) > 0 {
		fmt.Println()
		fmt.Println("Top Command Lines:")
		for _, cl := range stats.TopCommandLines {
			fmt.Printf("  %-30s %s\n", cl.Command, humanize.Comma(cl.Count))
		}
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(e *env, hist historyStatus, stats *storage.Stats, dbSize int64) error {
	out := statusJSON{
		Version:           c.version,
		HistoryPath:       e.historyPath,
		HistoryFound:      hist.found,
		HistorySizeBytes:  hist.sizeBytes,
		Lines:             hist.lines,
		Records:           hist.records,
		SkippedLines:      hist.skipped,
		ClockFallbacks:    hist.clockFallbacks,
		DatabasePath:      e.dbPath,
		DatabaseSizeBytes: dbSize,
		ArchivedCommands:  stats.TotalCommands,
		DistinctCommands:  stats.DistinctCommands,
		Imports:           stats.Imports,
		LastImport:        stats.LastImport,
		TopCommandLines:   make([]commandLineJSON, len(stats.TopCommandLines)),
	}

	if stats.TotalCommands > 0 {
		out.OldestCommand = stats.Oldest.UTC().Format(time.RFC3339)
		out.NewestCommand = stats.Newest.UTC().Format(time.RFC3339)
	}

	for i, cl := range stats.TopCommandLines {
		out.TopCommandLines[i] = commandLineJSON{Command: cl.Command, Count: cl.Count}
	}

	return printJSON(out)
}

// getDatabaseSize returns the database file size in bytes, falling back to
// the page-based size for in-memory or unavailable files.
func getDatabaseSize(dbPath string, pageBytes int64) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}
	return pageBytes
}
