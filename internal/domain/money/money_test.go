package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,500", "1500", true},
		{"1,234,567", "1234567", true},
		{"2,000.50", "2000.5", true},
		{"-1,000", "-1000", true},
		{"0.01", "0.01", true},
		{"1.005", "1.01", true},
		{" 2.50 ", "2.5", true},
		{"-4.20", "-4.2", true},
		{"0", "0", true},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1,23", "", false},
		{"12,34", "", false},
		{"1,2345", "", false},
		{"1,50,000", "", false},
		{",500", "", false},
		{"1.000,50", "", false},
		{"1e3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q: expected %s, got %s", tc.in, tc.out, got)
			}
			continue
		}
		if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParsePositive(t *testing.T) {
	if _, err := ParsePositive("0.001"); err == nil {
		t.Fatalf("expected amount rounding to zero to be rejected")
	}
	if _, err := ParsePositive("-1"); err == nil {
		t.Fatalf("expected negative amount to be rejected")
	}
	got, err := ParsePositive("19.99")
	if err != nil || !got.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("expected 19.99, got %s (err=%v)", got, err)
	}
}

func TestCoerceInvalidIsZero(t *testing.T) {
	for _, in := range []string{"", "n/a", "12..3", "7,5"} {
		if got := Coerce(in); !got.IsZero() {
			t.Fatalf("Coerce(%q) = %s, want 0", in, got)
		}
	}
	if got := Coerce("1,250.75"); !got.Equal(decimal.RequireFromString("1250.75")) {
		t.Fatalf("Coerce(1,250.75) = %s", got)
	}
}

func TestPercentAndAverage(t *testing.T) {
	if got := Percent(decimal.NewFromInt(750), decimal.NewFromInt(1000)); !got.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected 75, got %s", got)
	}
	if got := Percent(decimal.NewFromInt(-10), decimal.Zero); !got.IsZero() {
		t.Fatalf("expected 0 for zero whole, got %s", got)
	}
	if got := Average(decimal.NewFromInt(90), 3); !got.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected 30, got %s", got)
	}
	if got := Average(decimal.NewFromInt(90), 0); !got.IsZero() {
		t.Fatalf("expected 0 for empty set, got %s", got)
	}
}
