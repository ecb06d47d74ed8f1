package storage

import "time"

// ImportRun records one archive import of a history file.
type ImportRun struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Added     int64     `json:"added"`
	Skipped   int64     `json:"skipped"`
	StartedAt time.Time `json:"started_at"`
}

// Query defines filters for reading archived commands. Zero times leave that
// side open; Until is exclusive.
type Query struct {
	Since time.Time
	Until time.Time
	Limit int
}

// Stats holds aggregate statistics about the archive.
type Stats struct {
	TotalCommands     int64
	DistinctCommands  int64
	Oldest            time.Time
	Newest            time.Time
	Imports           int64
	LastImport        *ImportRun
	DatabaseSizeBytes int64
	TopCommandLines   []CommandLineCount
}

// CommandLineCount pairs a full command line with how often it was archived.
type CommandLineCount struct {
	Command string
	Count   int64
}
