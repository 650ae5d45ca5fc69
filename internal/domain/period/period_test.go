package period

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMatches(t *testing.T) {
	now := time.Date(2026, time.May, 20, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		filter Filter
		date   time.Time
		want   bool
	}{
		{"today same day", Today, day(2026, 5, 20), true},
		{"today yesterday", Today, day(2026, 5, 19), false},
		{"week six days back", Week, day(2026, 5, 14), true},
		{"week seven days back", Week, day(2026, 5, 13), false},
		{"month same", Month, day(2026, 5, 1), true},
		{"month previous year", Month, day(2025, 5, 20), false},
		{"quarter same", Quarter, day(2026, 4, 1), true},
		{"quarter previous", Quarter, day(2026, 3, 31), false},
		{"year same", Year, day(2026, 1, 1), true},
		{"year previous", Year, day(2025, 12, 31), false},
		{"all", All, day(1999, 1, 1), true},
	}
	for _, tc := range cases {
		if got := tc.filter.Matches(tc.date, now); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	f, err := Parse("", Today, Week)
	if err != nil || f != All {
		t.Fatalf("expected All for empty value, got %q (err=%v)", f, err)
	}
	f, err = Parse(" WEEK ", Today, Week)
	if err != nil || f != Week {
		t.Fatalf("expected week, got %q (err=%v)", f, err)
	}
	if _, err := Parse("quarter", Today, Week); err == nil {
		t.Fatalf("expected quarter to be rejected when not allowed")
	}
}

func TestQuarterOf(t *testing.T) {
	want := []int{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}
	for m := 1; m <= 12; m++ {
		if got := QuarterOf(day(2026, time.Month(m), 1)); got != want[m-1] {
			t.Fatalf("month %d: got Q%d, want Q%d", m, got, want[m-1])
		}
	}
}
