package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/timecraft/internal/config"
	"github.com/runnerr0/timecraft/internal/history"
	"github.com/runnerr0/timecraft/internal/logging"
	"github.com/runnerr0/timecraft/internal/storage"
)

// env is everything a command needs beyond its own flags.
type env struct {
	globals     *GlobalFlags
	cfg         *config.Config
	logger      *slog.Logger
	loc         *time.Location
	now         func() time.Time
	historyPath string
	dbPath      string

	// store is used instead of opening dbPath when set.
	store *storage.SQLiteStore
}

// loadEnv resolves config, logging and paths from the global flags.
func loadEnv(globals *GlobalFlags) (*env, error) {
	if globals.NoColor {
		color.NoColor = true
	}

	var (
		cfg *config.Config
		err error
	)
	if globals.Config != "" {
		cfg, err = config.Load(globals.Config)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return newEnv(globals, cfg, logging.New(cfg.Logging, globals.Verbose, os.Stderr))
}

// newEnv derives paths and the time zone from cfg.
func newEnv(globals *GlobalFlags, cfg *config.Config, logger *slog.Logger) (*env, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	historyPath := globals.History
	if historyPath == "" {
		historyPath, err = cfg.HistoryPath()
	} else {
		historyPath, err = config.ExpandPath(historyPath)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}

	return &env{
		globals:     globals,
		cfg:         cfg,
		logger:      logger,
		loc:         loc,
		now:         time.Now,
		historyPath: historyPath,
		dbPath:      dbPath,
	}, nil
}

// resolveEnv returns the injected env or loads one from the flags.
func resolveEnv(injected *env, globals *GlobalFlags) (*env, error) {
	if injected != nil {
		return injected, nil
	}
	return loadEnv(globals)
}

// parser returns a history parser bound to the env's file, zone and clock.
func (e *env) parser() *history.Parser {
	p := history.NewParser(e.historyPath, e.loc)
	p.Now = e.now
	return p
}

// readHistory parses the history file with p (e.parser() when nil) and logs
// the parse diagnostics.
func (e *env) readHistory(p *history.Parser) ([]history.Record, history.ParseStats, error) {
	if p == nil {
		p = e.parser()
	}
	records, stats, err := p.ReadWithStats()
	if err != nil {
		return nil, stats, err
	}
	logging.Component(e.logger, "parser").Debug("parsed history",
		slog.String("path", e.historyPath),
		slog.Int("lines", stats.Lines),
		slog.Int("records", stats.Records),
		slog.Int("skipped", stats.Skipped),
		slog.Int("clock_fallbacks", stats.ClockFallbacks),
	)
	return records, stats, nil
}

// loadRecords reads every record from the source selected by --source.
func (e *env) loadRecords(ctx context.Context) ([]history.Record, error) {
	switch e.globals.Source {
	case "", sourceFile:
		records, _, err := e.readHistory(nil)
		return records, err
	case sourceArchive:
		return e.archivedRecords(ctx, storage.Query{})
	default:
		return nil, fmt.Errorf("unknown source %q", e.globals.Source)
	}
}

// archivedRecords reads records matching q from the archive.
func (e *env) archivedRecords(ctx context.Context, q storage.Query) ([]history.Record, error) {
	store, closeStore, err := e.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	records, err := store.Records(ctx, q, e.loc)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	logging.Component(e.logger, "archive").Debug("read archive",
		slog.String("path", e.dbPath), slog.Int("records", len(records)))
	return records, nil
}

// openStore returns the injected store or opens the configured database,
// runs migrations, and returns a ready-to-use store with its cleanup.
func (e *env) openStore(ctx context.Context) (*storage.SQLiteStore, func(), error) {
	if e.store != nil {
		return e.store, func() {}, nil
	}

	db, err := openDB(ctx, e.dbPath, e.cfg.Storage.SQLiteJournalMode)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, func() {
		store.Close()
		db.Close()
	}, nil
}

// openDB opens the SQLite file at dbPath and runs migrations.
func openDB(ctx context.Context, dbPath, journalMode string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db, journalMode)
	if err := runner.Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	var unit time.Duration
	switch suffix {
	case 'd':
		unit = 24 * time.Hour
	case 'h':
		unit = time.Hour
	case 'w':
		unit = 7 * 24 * time.Hour
	case 'm':
		unit = time.Minute
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}

	if int64(n) > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("invalid duration: %q is too large", s)
	}
	return time.Duration(n) * unit, nil
}

// formatDurationHuman formats a duration into a human-readable string like "30 days".
func formatDurationHuman(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	hours := int(d.Hours())
	if hours > 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
