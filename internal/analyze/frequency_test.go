package analyze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timecraft/internal/history"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// cmds builds one record per command, a minute apart.
func cmds(commands ...string) []history.Record {
	records := make([]history.Record, len(commands))
	for i, c := range commands {
		records[i] = history.Record{Timestamp: base.Add(time.Duration(i) * time.Minute), Command: c}
	}
	return records
}

// repeat returns n copies of command.
func repeat(command string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = command
	}
	return out
}

func TestFirstToken(t *testing.T) {
	cases := map[string]string{
		"git status":      "git",
		"  ls\t-la":       "ls",
		"":                "",
		"   ":             "",
		"echo a;b":        "echo",
		"FOO=1 make test": "FOO=1",
	}
	for in, want := range cases {
		assert.Equal(t, want, FirstToken(in), "input %q", in)
	}
}

func TestTopCommands_SingleToken(t *testing.T) {
	records := cmds(repeat("git status", 7)...)

	assert.Equal(t, []CommandCount{{Command: "git", Count: 7}}, TopCommands(records, 1))
}

func TestTopCommands_RankingAndLimit(t *testing.T) {
	records := cmds("ls", "git a", "git b", "cd x", "git c", "ls -la", "vim f")

	top := TopCommands(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, CommandCount{Command: "git", Count: 3}, top[0])
	assert.Equal(t, CommandCount{Command: "ls", Count: 2}, top[1])

	all := TopCommands(records, 100)
	assert.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Count, all[i].Count)
	}
}

func TestTopCommands_ExcludesEmptyToken(t *testing.T) {
	records := cmds("", "   ", "ls")

	assert.Equal(t, []CommandCount{{Command: "ls", Count: 1}}, TopCommands(records, 5))
}

func TestTopCommands_ZeroLimitAndEmptyInput(t *testing.T) {
	assert.Empty(t, TopCommands(cmds("ls"), 0))
	assert.Empty(t, TopCommands(nil, 5))
}

func TestTopCommands_TiesDoNotPanic(t *testing.T) {
	records := cmds("a", "b", "c", "d")

	top := TopCommands(records, 2)
	require.Len(t, top, 2)
	for _, cc := range top {
		assert.Equal(t, 1, cc.Count)
	}
}

func TestSummarize(t *testing.T) {
	records := cmds("git a", "git b", "ls", "", "cd /", "cd ..", "vim")

	s := Summarize(records)
	assert.Equal(t, 7, s.TotalCommands)
	assert.Equal(t, 4, s.UniqueCommands, "empty token is not a command")
	require.Len(t, s.TopTools, 3)
	assert.Equal(t, "cd", s.TopTools[0].Command)
	assert.Equal(t, "git", s.TopTools[1].Command)
}

func TestSuggestAliases_Defaults(t *testing.T) {
	var commands []string
	commands = append(commands, repeat("git status", 11)...)
	commands = append(commands, repeat("docker ps", 10)...)
	commands = append(commands, repeat("npm run build", 12)...)
	commands = append(commands, repeat("kubectl get pods", 20)...)

	got := SuggestAliases(cmds(commands...), DefaultAliasOptions())

	// kubectl has no table entry, docker is not above the threshold.
	assert.Equal(t, []Alias{
		{Name: "nr", Expansion: "npm run"},
		{Name: "ni", Expansion: "npm install"},
		{Name: "g", Expansion: "git"},
		{Name: "gp", Expansion: "git push"},
		{Name: "gl", Expansion: "git pull"},
	}, got)
}

func TestSuggestAliases_OnlyTopN(t *testing.T) {
	var commands []string
	commands = append(commands, repeat("make", 30)...)
	commands = append(commands, repeat("git log", 11)...)

	opts := DefaultAliasOptions()
	opts.TopN = 1
	assert.Empty(t, SuggestAliases(cmds(commands...), opts))
}

func TestSuggestAliases_CustomTable(t *testing.T) {
	opts := AliasOptions{
		TopN:     10,
		MinCount: 1,
		Table:    AliasTable{"kubectl": {{Name: "k", Expansion: "kubectl"}}},
	}

	got := SuggestAliases(cmds("kubectl get", "kubectl apply"), opts)
	assert.Equal(t, []Alias{{Name: "k", Expansion: "kubectl"}}, got)
}

func TestFrequency_Idempotent(t *testing.T) {
	records := cmds("a", "b", "b", "c", "c", "c", "d", "e")

	assert.Equal(t, TopCommands(records, 10), TopCommands(records, 10))
	assert.Equal(t, Summarize(records), Summarize(records))
}
