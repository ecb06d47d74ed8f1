package cli

import (
	"database/sql"
	"io"
	"math/rand"
	"time"
)

// Sources records can be read from.
const (
	sourceFile    = "file"
	sourceArchive = "archive"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	History string `long:"history" description:"Path to the zsh history file (overrides history.path)"`
	Source  string `long:"source" description:"Where records come from" choice:"file" choice:"archive" default:"file"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	NoColor bool   `long:"no-color" description:"Disable colored output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// StatsCommand prints the top commands and the overall summary.
type StatsCommand struct {
	TopCommands bool `long:"top-commands" description:"Show the most used commands"`
	Daily       bool `long:"daily" description:"Show totals and top tools"`
	Limit       int  `long:"limit" description:"How many top commands to show" default:"5"`

	globals *GlobalFlags
	version string
	env     *env // injectable for testing; nil means load from flags
}

// AuditCommand reports likely typos and risky commands.
type AuditCommand struct {
	Typos  bool `long:"typos" description:"Check for common typos"`
	Danger bool `long:"danger" description:"Check for potentially dangerous commands"`

	globals *GlobalFlags
	version string
	env     *env
}

// OptimizeCommand suggests aliases for heavily used commands.
type OptimizeCommand struct {
	Auto bool `long:"auto" description:"Print how to append the aliases to ~/.zshrc"`

	globals *GlobalFlags
	version string
	env     *env
}

// ReplayCommand prints one day's commands with a pause between each.
type ReplayCommand struct {
	Delay string `long:"delay" description:"Pause between commands, e.g. 250ms (overrides replay.delay_ms)"`

	Args struct {
		Date string `positional-arg-name:"YYYY-MM-DD" required:"yes"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
	env     *env
	sleep   func(time.Duration) // nil means time.Sleep
}

// FunFactsCommand prints the fun facts.
type FunFactsCommand struct {
	globals *GlobalFlags
	version string
	env     *env
}

// RoastCommand prints one random roast.
type RoastCommand struct {
	globals *GlobalFlags
	version string
	env     *env
	rng     *rand.Rand // nil means seeded from the clock
}

// ArchiveCommand imports the history file into the SQLite archive.
type ArchiveCommand struct {
	globals *GlobalFlags
	version string
	env     *env
}

// StatusCommand shows the history file, parse diagnostics and archive stats.
type StatusCommand struct {
	globals *GlobalFlags
	version string
	env     *env
}

// PruneCommand deletes archived commands older than a duration.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Delete commands older than this (e.g., 90d, 2w, 24h)" default:"90d"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`
	Force     bool   `long:"force" description:"Skip the confirmation prompt"`

	globals *GlobalFlags
	version string
	env     *env
	stdin   io.Reader // nil means os.Stdin
}

// PurgeCommand deletes the whole archive with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	env     *env
	db      *sql.DB   // injectable for testing; nil means open the configured DB
	stdin   io.Reader // nil means os.Stdin
}
