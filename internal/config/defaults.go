package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Path:     "~/.zsh_history",
			Timezone: "",
		},
		Sessions: SessionsConfig{
			GapMinutes: 60,
		},
		Typos: TyposConfig{
			MinTokenLength: 2,
			Vocabulary:     DefaultVocabulary(),
		},
		Aliases: AliasesConfig{
			TopN:     10,
			MinCount: 10,
			Table:    DefaultAliasTable(),
		},
		Replay: ReplayConfig{
			DelayMS: 500,
		},
		Storage: StorageConfig{
			Path:              "~/.config/timecraft",
			SQLiteFile:        "timecraft.db",
			SQLiteJournalMode: "wal",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
