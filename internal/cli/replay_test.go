package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timecraft/internal/history"
)

// replayHistory has two commands on 2024-03-10 and one on 2024-03-11 (UTC).
func replayHistory() string {
	return zshHistory(
		entry{0, "cd project"},
		entry{5, "make test"},
		entry{24 * 60, "git push"},
	)
}

func newReplay(globals *GlobalFlags, date string, slept *[]time.Duration) *ReplayCommand {
	cmd := &ReplayCommand{globals: globals}
	cmd.Args.Date = date
	cmd.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return cmd
}

func TestReplay_PrintsDayInOrder(t *testing.T) {
	var slept []time.Duration
	globals := &GlobalFlags{}
	cmd := newReplay(globals, "2024-03-10", &slept)
	cmd.Delay = "250ms"
	e := newTestEnv(t, globals, replayHistory())

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	assert.Equal(t, "⏪ Replaying commands from 2024-03-10:\n→ cd project\n→ make test\n", output)
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, slept)
}

func TestReplay_UsesConfiguredDelay(t *testing.T) {
	var slept []time.Duration
	globals := &GlobalFlags{}
	cmd := newReplay(globals, "2024-03-11", &slept)
	e := newTestEnv(t, globals, replayHistory())
	e.cfg.Replay.DelayMS = 40

	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	assert.Equal(t, []time.Duration{40 * time.Millisecond}, slept)
}

func TestReplay_ZeroDelayNeverSleeps(t *testing.T) {
	var slept []time.Duration
	globals := &GlobalFlags{}
	cmd := newReplay(globals, "2024-03-10", &slept)
	e := newTestEnv(t, globals, replayHistory())

	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	assert.Empty(t, slept)
}

func TestReplay_NoEntries(t *testing.T) {
	var slept []time.Duration
	globals := &GlobalFlags{}
	cmd := newReplay(globals, "2020-01-01", &slept)
	e := newTestEnv(t, globals, replayHistory())

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	assert.Equal(t, "⏪ Replaying commands from 2020-01-01:\n", output)
}

func TestReplay_InvalidDate(t *testing.T) {
	var slept []time.Duration
	globals := &GlobalFlags{}
	cmd := newReplay(globals, "03/10/2024", &slept)
	e := newTestEnv(t, globals, replayHistory())

	err := cmd.executeWithEnv(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestReplay_InvalidDelay(t *testing.T) {
	var slept []time.Duration
	globals := &GlobalFlags{}
	cmd := newReplay(globals, "2024-03-10", &slept)
	cmd.Delay = "soon"
	e := newTestEnv(t, globals, replayHistory())

	assert.Error(t, cmd.executeWithEnv(e))
}

func TestReplay_JSON(t *testing.T) {
	var slept []time.Duration
	globals := &GlobalFlags{JSON: true}
	cmd := newReplay(globals, "2024-03-10", &slept)
	cmd.Delay = "1s"
	e := newTestEnv(t, globals, replayHistory())

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	var got replayJSON
	require.NoError(t, json.Unmarshal([]byte(output), &got), output)
	assert.Equal(t, "2024-03-10", got.Date)
	require.Len(t, got.Commands, 2)
	assert.Equal(t, "2024-03-10T09:00:00Z", got.Commands[0].Timestamp)
	assert.Equal(t, "make test", got.Commands[1].Command)
	assert.Empty(t, slept, "JSON output does not pause")
}

func TestReplay_FromArchive(t *testing.T) {
	var slept []time.Duration
	globals := &GlobalFlags{Source: sourceArchive}
	cmd := newReplay(globals, "2024-03-11", &slept)
	e := newTestEnv(t, globals, "")

	_, err := e.store.Import(context.Background(), "test", []history.Record{
		{Timestamp: histBase, Command: "cd project"},
		{Timestamp: histBase.Add(24 * time.Hour), Command: "git push"},
		{Timestamp: histBase.Add(48 * time.Hour), Command: "git pull"},
	})
	require.NoError(t, err)

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	assert.Equal(t, "⏪ Replaying commands from 2024-03-11:\n→ git push\n", output)
}
