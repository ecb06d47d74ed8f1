package analyze

import "github.com/runnerr0/timecraft/internal/history"

// Alias is a shorthand and the invocation it expands to.
type Alias struct {
	Name      string `json:"alias"`
	Expansion string `json:"command"`
}

// AliasTable maps a command name to the aliases worth suggesting for it.
type AliasTable map[string][]Alias

// AliasOptions controls which commands qualify for suggestions.
type AliasOptions struct {
	TopN     int
	MinCount int
	Table    AliasTable
}

// DefaultAliasTable returns the built-in suggestions for git, docker and npm.
func DefaultAliasTable() AliasTable {
	return AliasTable{
		"git": {
			{Name: "g", Expansion: "git"},
			{Name: "gp", Expansion: "git push"},
			{Name: "gl", Expansion: "git pull"},
		},
		"docker": {
			{Name: "d", Expansion: "docker"},
			{Name: "dc", Expansion: "docker-compose"},
		},
		"npm": {
			{Name: "nr", Expansion: "npm run"},
			{Name: "ni", Expansion: "npm install"},
		},
	}
}

// DefaultAliasOptions looks at the top 10 commands used more than 10 times.
func DefaultAliasOptions() AliasOptions {
	return AliasOptions{TopN: 10, MinCount: 10, Table: DefaultAliasTable()}
}

// SuggestAliases walks the top commands in rank order and emits the table's
// aliases for every command used more than opts.MinCount times. Commands
// missing from the table produce nothing.
func SuggestAliases(records []history.Record, opts AliasOptions) []Alias {
	suggestions := []Alias{}
	for _, cc := range TopCommands(records, opts.TopN) {
		if cc.Count <= opts.MinCount {
			continue
		}
		suggestions = append(suggestions, opts.Table[cc.Command]...)
	}
	return suggestions
}
