package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timecraft/internal/history"
)

// seededDB returns an in-memory archive holding three commands.
func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	store, db := openTestStore(t)

	_, err := store.Import(context.Background(), "test", []history.Record{
		{Timestamp: histBase, Command: "ls"},
		{Timestamp: histBase.Add(time.Second), Command: "pwd"},
		{Timestamp: histBase.Add(2 * time.Second), Command: "cd /"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, countRows(t, db, "commands"))

	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestPurge_WithoutAllFlag_Errors(t *testing.T) {
	err := RunWithArgs("test", []string{"purge"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purge requires --all flag for safety")
}

func TestPurge_WithAllAndForce_Succeeds(t *testing.T) {
	db := seededDB(t)

	cmd := &PurgeCommand{
		All:     true,
		Force:   true,
		globals: &GlobalFlags{},
	}
	cmd.setDB(db)

	var err error
	output := captureOutput(t, func() {
		err = cmd.Execute(nil)
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Purged the archive")
	assert.NotContains(t, output, "WARNING")
	assert.Zero(t, countRows(t, db, "commands"))
	assert.Zero(t, countRows(t, db, "imports"))
}

func TestPurge_JSONOutput(t *testing.T) {
	db := seededDB(t)

	cmd := &PurgeCommand{
		All:     true,
		Force:   true,
		globals: &GlobalFlags{JSON: true},
	}
	cmd.setDB(db)

	var err error
	output := captureOutput(t, func() {
		err = cmd.Execute(nil)
	})
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &result), "output should be valid JSON: %s", output)
	assert.Equal(t, true, result["purged"])
	assert.Equal(t, "archive deleted", result["message"])
}

func TestPurge_ConfirmationAccepted(t *testing.T) {
	db := seededDB(t)

	cmd := &PurgeCommand{
		All:     true,
		globals: &GlobalFlags{},
		stdin:   strings.NewReader("PURGE\n"),
	}
	cmd.setDB(db)

	var err error
	output := captureOutput(t, func() {
		err = cmd.Execute(nil)
	})

	require.NoError(t, err)
	assert.Contains(t, output, "WARNING")
	assert.Contains(t, output, `Type "PURGE" to confirm`)
	assert.Zero(t, countRows(t, db, "commands"))
}

func TestPurge_ConfirmationRejected(t *testing.T) {
	db := seededDB(t)

	cmd := &PurgeCommand{
		All:     true,
		globals: &GlobalFlags{},
		stdin:   strings.NewReader("purge\n"),
	}
	cmd.setDB(db)

	var err error
	captureOutput(t, func() {
		err = cmd.Execute(nil)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted")
	assert.Equal(t, 3, countRows(t, db, "commands"))
}

func TestPurge_NoInputAborts(t *testing.T) {
	db := seededDB(t)

	cmd := &PurgeCommand{
		All:     true,
		globals: &GlobalFlags{},
		stdin:   strings.NewReader(""),
	}
	cmd.setDB(db)

	var err error
	captureOutput(t, func() {
		err = cmd.Execute(nil)
	})

	require.Error(t, err)
	assert.Equal(t, 3, countRows(t, db, "commands"))
}
