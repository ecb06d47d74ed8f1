package analyze

import (
	"sort"
	"strings"

	"github.com/runnerr0/timecraft/internal/history"
)

// RiskLevel ranks how dangerous a command looks.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskRule flags commands for which Match returns true.
type RiskRule struct {
	Name       string
	Level      RiskLevel
	Suggestion string
	Match      func(command string) bool
}

// DangerousCommand is a distinct flagged command string and its tally.
type DangerousCommand struct {
	Command     string    `json:"command"`
	Occurrences int       `json:"occurrences"`
	Level       RiskLevel `json:"risk_level"`
	Suggestion  string    `json:"suggestion"`
}

// DefaultRiskRules returns the built-in rules, highest risk first.
func DefaultRiskRules() []RiskRule {
	return []RiskRule{
		{
			Name:       "recursive-force-delete",
			Level:      RiskHigh,
			Suggestion: "Use 'trash' command or add '-i' flag for interactive deletion",
			Match: func(cmd string) bool {
				return strings.Contains(cmd, "rm -rf")
			},
		},
		{
			Name:       "adhoc-sudo",
			Level:      RiskMedium,
			Suggestion: "Consider using 'sudo -E' or creating a proper service",
			Match: func(cmd string) bool {
				return strings.Contains(cmd, "sudo") &&
					!strings.Contains(cmd, "apt") &&
					!strings.Contains(cmd, "brew")
			},
		},
		{
			Name:       "silenced-output",
			Level:      RiskLow,
			Suggestion: "Consider proper logging instead of discarding output",
			Match: func(cmd string) bool {
				return strings.Contains(cmd, "> /dev/null 2>&1")
			},
		},
	}
}

// Classify returns the first rule matching command.
func Classify(command string, rules []RiskRule) (RiskRule, bool) {
	for _, rule := range rules {
		if rule.Match(command) {
			return rule, true
		}
	}
	return RiskRule{}, false
}

// FindDangerous counts whole command strings and returns those a rule flags.
// Unflagged commands are left out. Pass nil rules for the defaults. Output is
// sorted by command text only so repeated runs print the same way.
func FindDangerous(records []history.Record, rules []RiskRule) []DangerousCommand {
	if rules == nil {
		rules = DefaultRiskRules()
	}

	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Command]++
	}

	flagged := []DangerousCommand{}
	for cmd, n := range counts {
		rule, ok := Classify(cmd, rules)
		if !ok {
			continue
		}
		flagged = append(flagged, DangerousCommand{
			Command:     cmd,
			Occurrences: n,
			Level:       rule.Level,
			Suggestion:  rule.Suggestion,
		})
	}
	sort.Slice(flagged, func(i, j int) bool { return flagged[i].Command < flagged[j].Command })
	return flagged
}
