package analyze

import (
	"time"

	"github.com/runnerr0/timecraft/internal/history"
)

// DefaultSessionGap is the idle time that ends a session.
const DefaultSessionGap = time.Hour

// sessionTracker accumulates burst durations over records in file order.
type sessionTracker struct {
	gap     time.Duration
	current time.Duration
	longest time.Duration
	last    time.Time
	started bool
}

func (s *sessionTracker) observe(ts time.Time) {
	if s.started {
		// Negative deltas (out-of-order input) stay in the current burst.
		delta := ts.Sub(s.last)
		if delta < s.gap {
			s.current += delta
		} else {
			s.closeBurst()
		}
	}
	s.last = ts
	s.started = true
}

func (s *sessionTracker) closeBurst() {
	if s.current > s.longest {
		s.longest = s.current
	}
	s.current = 0
}

// finish reports the longest closed burst. The trailing burst is still open
// here and is deliberately not compared; calling s.closeBurst() first would
// count it.
func (s *sessionTracker) finish() time.Duration {
	return s.longest
}

// LongestSession returns the duration of the longest run of records whose
// consecutive gaps stay under gap. ok is false when records is empty.
func LongestSession(records []history.Record, gap time.Duration) (time.Duration, bool) {
	if len(records) == 0 {
		return 0, false
	}
	if gap <= 0 {
		gap = DefaultSessionGap
	}
	tracker := sessionTracker{gap: gap}
	for _, rec := range records {
		tracker.observe(rec.Timestamp)
	}
	return tracker.finish(), true
}

// SplitDuration breaks d into whole hours and the remaining minutes.
func SplitDuration(d time.Duration) (hours, minutes int) {
	total := int(d / time.Minute)
	return total / 60, total % 60
}

// HourActivity is the busiest hour of day and how many commands ran in it.
type HourActivity struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// HourlyCounts buckets records by local hour of day.
func HourlyCounts(records []history.Record) [24]int {
	var buckets [24]int
	for _, rec := range records {
		buckets[rec.Timestamp.Hour()]++
	}
	return buckets
}

// MostActiveHour returns the hour with the most commands. The earliest hour
// wins a tie. ok is false when records is empty.
func MostActiveHour(records []history.Record) (HourActivity, bool) {
	if len(records) == 0 {
		return HourActivity{}, false
	}
	buckets := HourlyCounts(records)
	best := HourActivity{}
	for hour, n := range buckets {
		if n > best.Count {
			best = HourActivity{Hour: hour, Count: n}
		}
	}
	return best, true
}
