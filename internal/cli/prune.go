package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	e, err := resolveEnv(c.env, c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEnv(e)
}

func (c *PruneCommand) executeWithEnv(e *env) error {
	ctx := context.Background()

	olderThan, err := parseDuration(c.OlderThan)
	if err != nil {
		return err
	}
	cutoff := e.now().Add(-olderThan)

	store, closeStore, err := e.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := store.CountBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if n == 0 {
		return c.report(0, olderThan, "No commands to prune.")
	}

	if c.DryRun {
		return c.report(n, olderThan, fmt.Sprintf("[DRY RUN] Would prune %s commands older than %s.",
			count(int(n)), formatDurationHuman(olderThan)))
	}

	if !c.Force {
		fmt.Printf("This will delete %s archived commands older than %s. Proceed? [y/N]: ",
			count(int(n)), formatDurationHuman(olderThan))
		if !confirm(c.stdin, "y", "yes") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	pruned, err := store.PruneBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	return c.report(pruned, olderThan, fmt.Sprintf("Pruned %s commands older than %s.",
		count(int(pruned)), formatDurationHuman(olderThan)))
}

// report prints message, or the counts as JSON when --json is set.
func (c *PruneCommand) report(n int64, olderThan time.Duration, message string) error {
	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"pruned":     n,
			"dry_run":    c.DryRun,
			"older_than": formatDurationHuman(olderThan),
		})
	}
	fmt.Println(message)
	return nil
}

// readAnswer reads one line from in (os.Stdin when nil) with surrounding
// space removed. ok is false when nothing could be read.
func readAnswer(in io.Reader) (answer string, ok bool) {
	if in == nil {
		in = os.Stdin
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// confirm reports whether the answer read from in matches one of accepted,
// ignoring case.
func confirm(in io.Reader, accepted ...string) bool {
	input, ok := readAnswer(in)
	if !ok {
		return false
	}
	for _, a := range accepted {
		if strings.EqualFold(input, a) {
			return true
		}
	}
	return false
}
