package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Stats    *StatsCommand
	Audit    *AuditCommand
	Optimize *OptimizeCommand
	Replay   *ReplayCommand
	FunFacts *FunFactsCommand
	Roast    *RoastCommand
	Archive  *ArchiveCommand
	Status   *StatusCommand
	Prune    *PruneCommand
	Purge    *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "timecraft"
	parser.LongDescription = "Your terminal's time machine: analyze and optimize your zsh history."

	cmds := &commands{
		Stats:    &StatsCommand{globals: &globals, version: version},
		Audit:    &AuditCommand{globals: &globals, version: version},
		Optimize: &OptimizeCommand{globals: &globals, version: version},
		Replay:   &ReplayCommand{globals: &globals, version: version},
		FunFacts: &FunFactsCommand{globals: &globals, version: version},
		Roast:    &RoastCommand{globals: &globals, version: version},
		Archive:  &ArchiveCommand{globals: &globals, version: version},
		Status:   &StatusCommand{globals: &globals, version: version},
		Prune:    &PruneCommand{globals: &globals, version: version},
		Purge:    &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("stats", "Show usage statistics", "Show the most used commands and overall totals. With no flags both are shown.", cmds.Stats)
	parser.AddCommand("audit", "Audit history for typos and risky commands", "Find likely typos and potentially dangerous commands. With no flags both are shown.", cmds.Audit)
	parser.AddCommand("optimize", "Suggest aliases", "Suggest aliases for your most used commands.", cmds.Optimize)
	parser.AddCommand("replay", "Replay a past day", "Print the commands run on a given day, one at a time.", cmds.Replay)
	parser.AddCommand("funfacts", "Show fun facts", "Show your longest session, busiest hour and command variety.", cmds.FunFacts)
	parser.AddCommand("roast", "Get roasted", "Get a humorous roast about your command habits.", cmds.Roast)
	parser.AddCommand("archive", "Archive the history file", "Import the parsed history file into the local SQLite archive.", cmds.Archive)
	parser.AddCommand("status", "Show history and archive status", "Show the history file, parse diagnostics and archive statistics.", cmds.Status)
	parser.AddCommand("prune", "Prune old archived commands", "Delete archived commands older than a duration.", cmds.Prune)
	parser.AddCommand("purge", "Delete the whole archive", "Delete ALL archived commands. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the timecraft CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("timecraft %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
