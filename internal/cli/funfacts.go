package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/runnerr0/timecraft/internal/analyze"
)

// Execute implements the go-flags Commander interface for FunFactsCommand.
func (c *FunFactsCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

func (c *FunFactsCommand) executeWithEnv(e *env) error {
	records, err := e.loadRecords(context.Background())
	if err != nil {
		return err
	}

	facts := analyze.FunFacts(records, e.cfg.SessionGap())

	if c.globals.JSON {
		return printJSON(map[string]interface{}{"facts": facts})
	}

	fmt.Println(magenta("📊 Fun Facts about your terminal usage:"))
	for _, f := range facts {
		fmt.Printf("%s %s\n", f.Emoji, f.Fact)
	}
	return nil
}

// Execute implements the go-flags Commander interface for RoastCommand.
func (c *RoastCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

// executeWithEnv still reads the history so a missing file is reported the
// same way as for every other command.
func (c *RoastCommand) executeWithEnv(e *env) error {
	if _, err := e.loadRecords(context.Background()); err != nil {
		return err
	}

	rng := c.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	roast := analyze.Roast(rng, analyze.Roasts)

	if c.globals.JSON {
		return printJSON(map[string]string{"roast": roast})
	}

	fmt.Println(red("🔥 Roast incoming:"))
	fmt.Println(roast)
	return nil
}
