package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runnerr0/timecraft/internal/storage"
)

// setDB allows tests to inject a database connection.
func (c *PurgeCommand) setDB(db *sql.DB) {
	c.db = db
}

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete the whole timecraft archive.")
		fmt.Println("  - All archived commands")
		fmt.Println("  - All import records")
		fmt.Println()
		fmt.Println("Your history file is not touched. This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		if answer, _ := readAnswer(c.stdin); answer != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	ctx := context.Background()

	// Open or use injected DB
	db := c.db
	if db == nil {
		e, err := resolveEnv(c.env, c.globals)
		if err != nil {
			return err
		}
		db, err = openDB(ctx, e.dbPath, e.cfg.Storage.SQLiteJournalMode)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer store.Close()

	if err := store.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	// Output
	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"purged":  true,
			"message": "archive deleted",
		})
	}

	fmt.Println("Purged the archive. timecraft's archive is empty.")
	return nil
}
