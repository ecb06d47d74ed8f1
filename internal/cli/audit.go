package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/timecraft/internal/analyze"
)

type auditJSON struct {
	Typos     []analyze.TypoSuggestion   `json:"typos,omitempty"`
	Dangerous []analyze.DangerousCommand `json:"dangerous,omitempty"`
}

// Execute implements the go-flags Commander interface for AuditCommand.
func (c *AuditCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

func (c *AuditCommand) executeWithEnv(e *env) error {
	records, err := e.loadRecords(context.Background())
	if err != nil {
		return err
	}

	showTypos, showDanger := c.Typos, c.Danger
	if !showTypos && !showDanger {
		showTypos, showDanger = true, true
	}

	var out auditJSON
	if showTypos {
		out.Typos = analyze.FindTypos(records, e.cfg.TypoOptions())
	}
	if showDanger {
		out.Dangerous = analyze.FindDangerous(records, nil)
	}

	if c.globals.JSON {
		return printJSON(out)
	}

	if showTypos {
		fmt.Println(yellow("🔍 Common typos found:"))
		for _, typo := range out.Typos {
			fmt.Printf("You typed '%s' instead of '%s' %s\n", red(typo.Typed), green(typo.Meant), times(typo.Count))
		}
	}

	if showDanger {
		fmt.Println(red("\n🚨 Potentially dangerous commands:"))
		for _, cmd := range out.Dangerous {
			fmt.Printf("Command: %s (%s) [%s]\n", red(cmd.Command), times(cmd.Occurrences), cmd.Level)
			fmt.Printf("Suggestion: %s\n\n", yellow(cmd.Suggestion))
		}
	}

	return nil
}
