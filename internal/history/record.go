package history

import "time"

// Record is one parsed history entry.
type Record struct {
	Timestamp time.Time
	Command   string
}

// Representable epoch range: 0001-01-01T00:00:00Z through 9999-12-31T23:59:59Z.
const (
	minEpoch int64 = -62135596800
	maxEpoch int64 = 253402300799
)

// TimestampFromEpoch converts epoch seconds into a time in loc. Values outside
// the representable range resolve to now() instead of failing.
func TimestampFromEpoch(epoch int64, loc *time.Location, now func() time.Time) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if epoch < minEpoch || epoch > maxEpoch {
		if now == nil {
			now = time.Now
		}
		return now().In(loc)
	}
	return time.Unix(epoch, 0).In(loc)
}

// inRange reports whether epoch converts without the now() fallback.
func inRange(epoch int64) bool {
	return epoch >= minEpoch && epoch <= maxEpoch
}
