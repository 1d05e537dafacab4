package timeutil

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseBound accepts RFC 3339 timestamps or bare dates, returned in UTC.
// A bare end date covers the whole day.
func ParseBound(raw string, end bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if end {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return d, nil
}
