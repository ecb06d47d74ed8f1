package cli

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timecraft/internal/config"
	"github.com/runnerr0/timecraft/internal/logging"
	"github.com/runnerr0/timecraft/internal/storage"
)

func init() {
	color.NoColor = true
}

var (
	// testNow is the fixed clock used by every test env.
	testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	// histBase is where test histories start.
	histBase = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-done
}

// entry is one command at a minute offset from histBase.
type entry struct {
	minutes int
	command string
}

// zshHistory renders entries in extended history format.
func zshHistory(entries ...entry) string {
	var b strings.Builder
	for _, e := range entries {
		ts := histBase.Add(time.Duration(e.minutes) * time.Minute)
		fmt.Fprintf(&b, ": %d:0;%s\n", ts.Unix(), e.command)
	}
	return b.String()
}

// repeatEntries returns n entries of command, one minute apart from start.
func repeatEntries(start int, command string, n int) []entry {
	out := make([]entry, n)
	for i := range out {
		out[i] = entry{minutes: start + i, command: command}
	}
	return out
}

// openTestStore creates a migrated in-memory store.
func openTestStore(t *testing.T) (*storage.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// Each new connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.NewMigrationRunner(db, "").Run(context.Background()))

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, db
}

// newTestEnv writes history to a temp file and returns an env reading it,
// with an in-memory archive, UTC times and a fixed clock.
func newTestEnv(t *testing.T, globals *GlobalFlags, history string) *env {
	t.Helper()
	dir := t.TempDir()
	histPath := filepath.Join(dir, ".zsh_history")
	require.NoError(t, os.WriteFile(histPath, []byte(history), 0600))

	store, _ := openTestStore(t)

	cfg := config.DefaultConfig()
	cfg.History.Timezone = "UTC"
	cfg.Replay.DelayMS = 0

	return &env{
		globals:     globals,
		cfg:         cfg,
		logger:      logging.Discard(),
		loc:         time.UTC,
		now:         func() time.Time { return testNow },
		historyPath: histPath,
		dbPath:      filepath.Join(dir, "timecraft.db"),
		store:       store,
	}
}
