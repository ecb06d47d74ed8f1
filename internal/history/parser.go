package history

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultFileName is the zsh history file looked up under the home directory.
const DefaultFileName = ".zsh_history"

// DateLayout is the only accepted format for date filters.
const DateLayout = "2006-01-02"

const linePrefix = ": "

// ParseStats counts what happened to each line during a parse pass.
type ParseStats struct {
	Lines          int
	Records        int
	Skipped        int
	ClockFallbacks int
}

// Parser decodes zsh extended history files of the form
// ": <epoch>:<elapsed>;<command>".
type Parser struct {
	Path     string
	Location *time.Location
	Now      func() time.Time

	// DropClockFallbacks leaves out records whose epoch was out of range.
	// They are still counted in ParseStats.ClockFallbacks, but not in
	// Records. Their timestamps change on every parse, so anything keyed
	// by time (the archive) should not see them.
	DropClockFallbacks bool
}

// NewParser returns a parser for path that reports timestamps in loc
// (time.Local when nil).
func NewParser(path string, loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{Path: path, Location: loc, Now: time.Now}
}

// DefaultPath returns ~/.zsh_history.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Read parses the whole history file. Only failing to open or read the file
// is an error; malformed lines are dropped.
func (p *Parser) Read() ([]Record, error) {
	records, _, err := p.ReadWithStats()
	return records, err
}

// ReadWithStats is Read plus per-line diagnostics.
func (p *Parser) ReadWithStats() ([]Record, ParseStats, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Parse reads newline-delimited history from r. Ill-formed UTF-8 is
// replaced with U+FFFD (see decodeLossy) before the line grammar is applied.
func (p *Parser) Parse(r io.Reader) ([]Record, ParseStats, error) {
	var (
		records []Record
		stats   ParseStats
	)
	br := bufio.NewReader(r)

	for {
		chunk, err := br.ReadBytes('\n')
		if len(chunk) > 0 {
			stats.Lines++
			line := decodeLossy(bytes.TrimSuffix(chunk, []byte{'\n'}))
			rec, fallback, ok := p.parseLine(line)
			switch {
			case !ok:
				stats.Skipped++
			case fallback && p.DropClockFallbacks:
				stats.ClockFallbacks++
			default:
				records = append(records, rec)
				stats.Records++
				if fallback {
					stats.ClockFallbacks++
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, stats, fmt.Errorf("read history: %w", err)
		}
	}

	return records, stats, nil
}

// decodeLossy converts b to a string, replacing each maximal ill-formed
// subsequence with one U+FFFD. Two stray bytes become two replacement
// characters; a truncated multi-byte sequence becomes one.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[:size])
			b = b[size:]
			continue
		}
		sb.WriteRune(utf8.RuneError)
		b = b[illFormedPrefixLen(b):]
	}
	return sb.String()
}

// illFormedPrefixLen returns how many bytes at the start of b belong to one
// ill-formed sequence: the lead byte plus the continuation bytes that were
// still acceptable before the sequence broke off.
func illFormedPrefixLen(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c >= 0xE1 && c <= 0xEC, c == 0xEE, c == 0xEF:
		need = 2
	case c == 0xED:
		need, hi = 2, 0x9F
	case c == 0xF0:
		need, lo = 3, 0x90
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	case c == 0xF4:
		need, hi = 3, 0x8F
	default:
		return 1
	}

	n := 1
	for n <= need && n < len(b) && b[n] >= lo && b[n] <= hi {
		n++
		lo, hi = 0x80, 0xBF
	}
	return n
}

// ParseLine applies the line grammar to a single decoded line.
func (p *Parser) ParseLine(line string) (Record, bool) {
	rec, _, ok := p.parseLine(line)
	return rec, ok
}

func (p *Parser) parseLine(line string) (Record, bool, bool) {
	rest, ok := strings.CutPrefix(line, linePrefix)
	if !ok {
		return Record{}, false, false
	}
	meta, command, ok := strings.Cut(rest, ";")
	if !ok {
		return Record{}, false, false
	}
	epochStr, _, ok := strings.Cut(meta, ":")
	if !ok {
		return Record{}, false, false
	}
	epoch, err := strconv.ParseInt(epochStr, 10, 64)
	if err != nil {
		return Record{}, false, false
	}

	return Record{
		Timestamp: TimestampFromEpoch(epoch, p.Location, p.Now),
		Command:   command,
	}, !inRange(epoch), true
}

// EntriesForDate reads the history file and keeps the records whose local
// calendar date matches date (YYYY-MM-DD).
func (p *Parser) EntriesForDate(date string) ([]Record, error) {
	day, err := ParseDate(date, p.Location)
	if err != nil {
		return nil, err
	}
	records, err := p.Read()
	if err != nil {
		return nil, err
	}
	return FilterByDate(records, day), nil
}

// ParseDate parses a strict YYYY-MM-DD date in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	return day, nil
}

// FilterByDate keeps records on the same calendar day as day, comparing in
// day's location and ignoring time of day.
func FilterByDate(records []Record, day time.Time) []Record {
	y, m, d := day.Date()
	loc := day.Location()

	var out []Record
	for _, rec := range records {
		ry, rm, rd := rec.Timestamp.In(loc).Date()
		if ry == y && rm == m && rd == d {
			out = append(out, rec)
		}
	}
	return out
}
