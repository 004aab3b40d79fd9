package types

import (
	"errors"
	"time"
)

// ISO-8601 layouts accepted on the wire, most precise first.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO-8601 timestamp. Strings without a zone are read as UTC.
func ParseTime(str string) (t time.Time, err error) {
	if str == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, format := range timeFormats {
		t, err = time.ParseInLocation(format, str, time.UTC)
		if err == nil {
			return
		}
	}
	err = errors.New("can't parse string as time: " + str)
	return
}

// FormatTime formats t as RFC 3339 with nanoseconds in UTC. The zero time formats as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// Later returns the later of a and b.
func Later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
