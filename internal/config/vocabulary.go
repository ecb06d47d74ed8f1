package config

import "github.com/runnerr0/timecraft/internal/analyze"

// DefaultVocabulary returns the command names typos are matched against.
func DefaultVocabulary() []string {
	return analyze.DefaultVocabulary()
}

// DefaultAliasTable returns the built-in alias suggestions in config form.
// Entries from the config file are merged over these by command name.
func DefaultAliasTable() map[string][]AliasEntry {
	table := make(map[string][]AliasEntry)
	for cmd, aliases := range analyze.DefaultAliasTable() {
		entries := make([]AliasEntry, len(aliases))
		for i, a := range aliases {
			entries[i] = AliasEntry{Alias: a.Name, Command: a.Expansion}
		}
		table[cmd] = entries
	}
	return table
}

// AliasOptions converts the aliases and typos sections into engine options.
func (c *Config) AliasOptions() analyze.AliasOptions {
	table := make(analyze.AliasTable, len(c.Aliases.Table))
	for cmd, entries := range c.Aliases.Table {
		aliases := make([]analyze.Alias, len(entries))
		for i, e := range entries {
			aliases[i] = analyze.Alias{Name: e.Alias, Expansion: e.Command}
		}
		table[cmd] = aliases
	}
	return analyze.AliasOptions{
		TopN:     c.Aliases.TopN,
		MinCount: c.Aliases.MinCount,
		Table:    table,
	}
}

// TypoOptions builds the typo engine options with the default scorer.
func (c *Config) TypoOptions() analyze.TypoOptions {
	return analyze.TypoOptions{
		Vocabulary:     c.Typos.Vocabulary,
		MinTokenLength: c.Typos.MinTokenLength,
		Scorer:         analyze.FuzzyScorer{},
	}
}
