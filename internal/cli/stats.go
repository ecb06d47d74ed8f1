package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/timecraft/internal/analyze"
)

type statsJSON struct {
	TopCommands []analyze.CommandCount `json:"top_commands,omitempty"`
	Summary     *analyze.Summary       `json:"summary,omitempty"`
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

func (c *StatsCommand) executeWithEnv(e *env) error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	records, err := e.loadRecords(context.Background())
	if err != nil {
		return err
	}

	showTop, showDaily := c.TopCommands, c.Daily
	if !showTop && !showDaily {
		showTop, showDaily = true, true
	}

	var out statsJSON
	if showTop {
		out.TopCommands = analyze.TopCommands(records, c.Limit)
	}
	if showDaily {
		summary := analyze.Summarize(records)
		out.Summary = &summary
	}

	if c.globals.JSON {
		return printJSON(out)
	}

	if showTop {
		fmt.Println(green("🔥 Your top commands:"))
		for i, cc := range out.TopCommands {
			fmt.Printf("%d. %s (%s)\n", i+1, yellow(cc.Command), times(cc.Count))
		}
	}

	if showDaily {
		fmt.Println()
		fmt.Println("📊 Daily Statistics:")
		fmt.Printf("Total commands: %s\n", count(out.Summary.TotalCommands))
		fmt.Printf("Unique commands: %s\n", count(out.Summary.UniqueCommands))
		fmt.Println()
		fmt.Println("Top tools:")
		for _, tool := range out.Summary.TopTools {
			fmt.Printf("- %s (%s)\n", cyan(tool.Command), times(tool.Count))
		}
	}

	return nil
}
