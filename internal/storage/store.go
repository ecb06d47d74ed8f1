package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/timecraft/internal/history"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store defines the interface for archive operations.
type Store interface {
	Import(ctx context.Context, source string, records []history.Record) (*ImportRun, error)
	Records(ctx context.Context, q Query, loc *time.Location) ([]history.Record, error)
	LastImport(ctx context.Context) (*ImportRun, error)
	CountBefore(ctx context.Context, before time.Time) (int64, error)
	PruneBefore(ctx context.Context, before time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertImport  *sql.Stmt
	finishImport  *sql.Stmt
	insertCommand *sql.Stmt
	lastImport    *sql.Stmt
	countBefore   *sql.Stmt

	now func() time.Time
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, now: time.Now}

	if err := s.prepareStatements(); err != nil {
		s.Close()
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertImport, err = s.db.Prepare(`
		INSERT INTO imports (id, source, started_at) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.finishImport, err = s.db.Prepare(`
		UPDATE imports SET added = ?, skipped = ? WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.insertCommand, err = s.db.Prepare(`
		INSERT OR IGNORE INTO commands (ts, command, import_id) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.lastImport, err = s.db.Prepare(`
		SELECT id, source, added, skipped, started_at
		FROM imports ORDER BY started_at DESC, rowid DESC LIMIT 1
	`)
	if err != nil {
		return err
	}

	s.countBefore, err = s.db.Prepare(`SELECT COUNT(*) FROM commands WHERE ts < ?`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// Import archives records in a single transaction under a new import run.
// A record whose (second, command) pair is already archived is counted as
// skipped, so importing the same file twice adds nothing the second time.
func (s *SQLiteStore) Import(ctx context.Context, source string, records []history.Record) (*ImportRun, error) {
	run := &ImportRun{
		ID:        uuid.NewString(),
		Source:    source,
		StartedAt: s.now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.StmtContext(ctx, s.insertImport).ExecContext(ctx,
		run.ID, run.Source, run.StartedAt.Format(time.RFC3339),
	); err != nil {
		return nil, fmt.Errorf("insert import: %w", err)
	}

	insert := tx.StmtContext(ctx, s.insertCommand)
	for _, rec := range records {
		res, err := insert.ExecContext(ctx, rec.Timestamp.Unix(), rec.Command, run.ID)
		if err != nil {
			return nil, fmt.Errorf("insert command: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n > 0 {
			run.Added++
		} else {
			run.Skipped++
		}
	}

	if _, err := tx.StmtContext(ctx, s.finishImport).ExecContext(ctx,
		run.Added, run.Skipped, run.ID,
	); err != nil {
		return nil, fmt.Errorf("finish import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return run, nil
}

// Records returns archived commands in timestamp order, converted to loc.
// A nil loc means local time.
func (s *SQLiteStore) Records(ctx context.Context, q Query, loc *time.Location) ([]history.Record, error) {
	if loc == nil {
		loc = time.Local
	}

	var clauses []string
	var args []interface{}

	if !q.Since.IsZero() {
		clauses = append(clauses, "ts >= ?")
		args = append(args, q.Since.Unix())
	}
	if !q.Until.IsZero() {
		clauses = append(clauses, "ts < ?")
		args = append(args, q.Until.Unix())
	}

	query := "SELECT ts, command FROM commands"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY ts, id"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer rows.Close()

	records := []history.Record{}
	for rows.Next() {
		var ts int64
		var rec history.Record
		if err := rows.Scan(&ts, &rec.Command); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0).In(loc)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LastImport returns the most recent import run, or ErrNotFound.
func (s *SQLiteStore) LastImport(ctx context.Context) (*ImportRun, error) {
	var run ImportRun
	var startedAt string

	err := s.lastImport.QueryRowContext(ctx).Scan(
		&run.ID, &run.Source, &run.Added, &run.Skipped, &startedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("last import: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("last import: %w", err)
	}

	run.StartedAt, _ = parseTimestamp(startedAt)
	return &run, nil
}

// CountBefore reports how many archived commands ran before the given time.
func (s *SQLiteStore) CountBefore(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	if err := s.countBefore.QueryRowContext(ctx, before.Unix()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count commands: %w", err)
	}
	return n, nil
}

// PruneBefore deletes archived commands that ran before the given time.
func (s *SQLiteStore) PruneBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM commands WHERE ts < ?", before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune commands: %w", err)
	}
	return res.RowsAffected()
}

// PurgeAll deletes every archived command and import run.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range []string{"DELETE FROM commands", "DELETE FROM imports"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return tx.Commit()
}

// GetStats returns aggregate statistics about the archive.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT command) FROM commands",
	).Scan(&stats.TotalCommands, &stats.DistinctCommands)
	if err != nil {
		return nil, fmt.Errorf("count commands: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.TotalCommands > 0 {
		var oldest, newest int64
		err = s.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM commands").Scan(&oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("command time range: %w", err)
		}
		stats.Oldest = time.Unix(oldest, 0).UTC()
		stats.Newest = time.Unix(newest, 0).UTC()
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM imports").Scan(&stats.Imports); err != nil {
		return nil, fmt.Errorf("count imports: %w", err)
	}

	last, err := s.LastImport(ctx)
	switch {
	case err == nil:
		stats.LastImport = last
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	stats.DatabaseSizeBytes = s.pageBytes(ctx)

	rows, err := s.db.QueryContext(ctx, `
		SELECT command, COUNT(*) AS cnt FROM commands
		GROUP BY command ORDER BY cnt DESC, command LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("top command lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc CommandLineCount
		if err := rows.Scan(&cc.Command, &cc.Count); err != nil {
			return nil, err
		}
		stats.TopCommandLines = append(stats.TopCommandLines, cc)
	}

	return stats, rows.Err()
}

// pageBytes returns page_count * page_size, or 0 if either pragma fails.
func (s *SQLiteStore) pageBytes(ctx context.Context) int64 {
	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.insertImport, s.finishImport, s.insertCommand,
		s.lastImport, s.countBefore,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
