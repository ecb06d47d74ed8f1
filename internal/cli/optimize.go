package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/timecraft/internal/analyze"
)

type optimizeJSON struct {
	Aliases []analyze.Alias `json:"aliases"`
	Hint    string          `json:"hint,omitempty"`
}

const autoHint = "timecraft optimize | grep alias >> ~/.zshrc"

// Execute implements the go-flags Commander interface for OptimizeCommand.
func (c *OptimizeCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

func (c *OptimizeCommand) executeWithEnv(e *env) error {
	records, err := e.loadRecords(context.Background())
	if err != nil {
		return err
	}

	aliases := analyze.SuggestAliases(records, e.cfg.AliasOptions())

	if c.globals.JSON {
		out := optimizeJSON{Aliases: aliases}
		if c.Auto {
			out.Hint = autoHint
		}
		return printJSON(out)
	}

	fmt.Println(blue("⚡ Suggested aliases:"))
	for _, a := range aliases {
		fmt.Printf("alias %s='%s'\n", green(a.Name), a.Expansion)
	}

	if c.Auto {
		fmt.Println(yellow("\nTo automatically add these aliases, run:"))
		fmt.Println(autoHint)
	}

	return nil
}
