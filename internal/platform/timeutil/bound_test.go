package timeutil

import (
	"testing"
	"time"
)

func TestParseBound(t *testing.T) {
	cases := []struct {
		raw  string
		end  bool
		want time.Time
	}{
		{"2024-06-01", false, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-06-01", true, time.Date(2024, 6, 1, 23, 59, 59, 999999999, time.UTC)},
		{"2024-06-01T10:00:00+02:00", true, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseBound(tc.raw, tc.end)
		if err != nil {
			t.Fatalf("ParseBound(%q): %v", tc.raw, err)
		}
		if !got.Equal(tc.want) || got.Location() != time.UTC {
			t.Fatalf("ParseBound(%q, %v): want=%v got=%v", tc.raw, tc.end, tc.want, got)
		}
	}
	if _, err := ParseBound("06/01/2024", false); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
	if _, err := ParseBound("", false); err == nil {
		t.Fatalf("expected error for empty bound")
	}
}
