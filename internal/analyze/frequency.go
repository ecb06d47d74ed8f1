// Package analyze derives usage metrics from parsed shell history. Every
// function here is a read-only pass over a record slice; none of them keep
// state between calls.
package analyze

import (
	"sort"
	"strings"

	"github.com/runnerr0/timecraft/internal/history"
)

// CommandCount pairs a command name with how often it was run.
type CommandCount struct {
	Command string `json:"command"`
	Count   int    `json:"count"`
}

// Summary is the daily stats view: totals plus the three busiest tools.
type Summary struct {
	TotalCommands  int            `json:"total_commands"`
	UniqueCommands int            `json:"unique_commands"`
	TopTools       []CommandCount `json:"top_tools"`
}

// FirstToken returns the leading whitespace-delimited word of cmd, or "".
func FirstToken(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CountFirstTokens builds the first-token frequency table. Commands with no
// first token are not counted.
func CountFirstTokens(records []history.Record) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		if tok := FirstToken(rec.Command); tok != "" {
			counts[tok]++
		}
	}
	return counts
}

// TopCommands returns at most limit commands ranked by descending count.
// Tie order is not part of the contract; equal counts happen to come out
// sorted by name.
func TopCommands(records []history.Record, limit int) []CommandCount {
	return rank(CountFirstTokens(records), limit)
}

func rank(counts map[string]int, limit int) []CommandCount {
	if limit <= 0 {
		return []CommandCount{}
	}
	ranked := make([]CommandCount, 0, len(counts))
	for cmd, n := range counts {
		ranked = append(ranked, CommandCount{Command: cmd, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].Command < ranked[j].Command
		}
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// UniqueCommands counts distinct non-empty first tokens.
func UniqueCommands(records []history.Record) int {
	return len(CountFirstTokens(records))
}

// Summarize computes the daily stats view.
func Summarize(records []history.Record) Summary {
	return Summary{
		TotalCommands:  len(records),
		UniqueCommands: UniqueCommands(records),
		TopTools:       TopCommands(records, 3),
	}
}
