package cli

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timecraft/internal/history"
)

func TestStatus_EmptyArchive(t *testing.T) {
	globals := &GlobalFlags{}
	cmd := &StatusCommand{globals: globals, version: "dev"}
	e := newTestEnv(t, globals, zshHistory(entry{0, "ls"})+"garbage\n")

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	assert.Contains(t, output, "timecraft status")
	assert.Contains(t, output, "Version:       dev")
	assert.Contains(t, output, "Records:       1 of 2 lines")
	assert.Contains(t, output, "Skipped:       1 lines")
	assert.Contains(t, output, "Commands:      0 (0 distinct)")
	assert.Contains(t, output, "Last import:   never")
	assert.NotContains(t, output, "Oldest:")
}

func TestStatus_MissingHistoryIsReported(t *testing.T) {
	globals := &GlobalFlags{}
	cmd := &StatusCommand{globals: globals, version: "dev"}
	e := newTestEnv(t, globals, "")
	require.NoError(t, os.Remove(e.historyPath))

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	assert.Contains(t, output, "(not found)")
}

func TestStatus_WithArchive(t *testing.T) {
	globals := &GlobalFlags{}
	cmd := &StatusCommand{globals: globals, version: "dev"}
	e := newTestEnv(t, globals, "")

	_, err := e.store.Import(context.Background(), "test", []history.Record{
		{Timestamp: histBase, Command: "git status"},
		{Timestamp: histBase.Add(60), Command: "ls"},
		{Timestamp: histBase.AddDate(0, 0, 2), Command: "git status"},
	})
	require.NoError(t, err)

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	assert.Contains(t, output, "Commands:      3 (2 distinct)")
	assert.Contains(t, output, "Oldest:        2024-03-10")
	assert.Contains(t, output, "Newest:        2024-03-12")
	assert.Contains(t, output, "Last import:")
	assert.NotContains(t, output, "never")
	assert.Contains(t, output, "Top Command Lines:")
	assert.Contains(t, output, "git status")
}

func TestStatus_JSON(t *testing.T) {
	globals := &GlobalFlags{JSON: true}
	cmd := &StatusCommand{globals: globals, version: "1.0.0"}
	e := newTestEnv(t, globals, zshHistory(entry{0, "ls"}, entry{1, "pwd"}))

	archive := &ArchiveCommand{globals: &GlobalFlags{}}
	captureOutput(t, func() {
		require.NoError(t, archive.executeWithEnv(e))
	})

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	var got statusJSON
	require.NoError(t, json.Unmarshal([]byte(output), &got), output)
	assert.Equal(t, "1.0.0", got.Version)
	assert.True(t, got.HistoryFound)
	assert.Equal(t, 2, got.Records)
	assert.EqualValues(t, 2, got.ArchivedCommands)
	assert.EqualValues(t, 1, got.Imports)
	require.NotNil(t, got.LastImport)
	assert.EqualValues(t, 2, got.LastImport.Added)
	assert.Equal(t, "2024-03-10T09:00:00Z", got.OldestCommand)
	assert.Positive(t, got.DatabaseSizeBytes)
	assert.Len(t, got.TopCommandLines, 2)
}
