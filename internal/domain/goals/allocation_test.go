package goals

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func goal(current, target string) Goal {
	return Goal{ID: "g-1", UserID: "user-1", CurrentAmount: d(current), TargetAmount: d(target)}
}

func TestAllocateChecksInOrder(t *testing.T) {
	cases := []struct {
		name      string
		goal      Goal
		amount    string
		available string
		want      error
	}{
		{"zero amount", goal("0", "100"), "0", "50", ErrInvalidAmount},
		{"negative amount", goal("0", "100"), "-5", "50", ErrInvalidAmount},
		{"invalid amount wins over funds", goal("0", "100"), "0", "-10", ErrInvalidAmount},
		{"insufficient funds", goal("0", "100"), "60", "50", ErrInsufficientFunds},
		{"funds win over target", goal("90", "100"), "60", "50", ErrInsufficientFunds},
		{"negative available", goal("0", "100"), "1", "-1", ErrInsufficientFunds},
		{"exceeds target", goal("90", "100"), "20", "50", ErrExceedsTarget},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Allocate(tc.goal, d(tc.amount), d(tc.available))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !result.CurrentAmount.Equal(tc.goal.CurrentAmount) {
				t.Fatalf("goal must be unchanged on failure, got %s", result.CurrentAmount)
			}
		})
	}
}

func TestAllocateInsufficientFundsExample(t *testing.T) {
	// available 50, current 0, target 100, amount 60
	_, err := Allocate(goal("0", "100"), d("60"), d("50"))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestAllocateExceedsTargetExample(t *testing.T) {
	// available 500, current 90, target 100, amount 20
	_, err := Allocate(goal("90", "100"), d("20"), d("500"))
	if !errors.Is(err, ErrExceedsTarget) {
		t.Fatalf("expected ErrExceedsTarget, got %v", err)
	}
}

func TestAllocateCompletesGoal(t *testing.T) {
	result, err := Allocate(goal("90", "100"), d("10"), d("500"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.CurrentAmount.Equal(d("100")) || !result.IsCompleted {
		t.Fatalf("expected completed goal at 100, got %s completed=%v", result.CurrentAmount, result.IsCompleted)
	}
}

func TestAllocatePartial(t *testing.T) {
	start := goal("0", "100")
	result, err := Allocate(start, d("25.50"), d("25.50"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.CurrentAmount.Equal(d("25.5")) || result.IsCompleted {
		t.Fatalf("unexpected result %+v", result)
	}
	if !start.CurrentAmount.IsZero() {
		t.Fatalf("input goal must not be mutated")
	}
}

func TestAllocateRederivesManualFlag(t *testing.T) {
	manual := goal("10", "100")
	manual.IsCompleted = true
	result, err := Allocate(manual, d("5"), d("100"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IsCompleted {
		t.Fatalf("expected flag re-derived from amounts")
	}
}

func TestToggleComplete(t *testing.T) {
	g := goal("10", "100")
	once := ToggleComplete(g)
	if !once.IsCompleted {
		t.Fatalf("expected completed after toggle")
	}
	if twice := ToggleComplete(once); twice.IsCompleted {
		t.Fatalf("expected toggle to flip back")
	}
	if g.IsCompleted {
		t.Fatalf("input goal must not be mutated")
	}
}

func TestMaxAllocation(t *testing.T) {
	cases := []struct {
		goal      Goal
		available string
		want      string
	}{
		{goal("0", "100"), "40", "40"},
		{goal("70", "100"), "500", "30"},
		{goal("0", "100"), "-20", "0"},
		{goal("100", "100"), "50", "0"},
	}
	for _, tc := range cases {
		if got := MaxAllocation(tc.goal, d(tc.available)); !got.Equal(d(tc.want)) {
			t.Fatalf("MaxAllocation(%s/%s, %s) = %s, want %s", tc.goal.CurrentAmount, tc.goal.TargetAmount, tc.available, got, tc.want)
		}
	}
}

func TestQuickAmounts(t *testing.T) {
	cases := []struct {
		max  string
		want []string
	}{
		{"0", nil},
		{"0.75", nil},
		{"30.99", []string{"25", "30"}},
		{"50", []string{"25", "50"}},
		{"100", []string{"25", "50", "100"}},
		{"250.40", []string{"25", "50", "100", "250"}},
		{"10", []string{"10"}},
	}
	for _, tc := range cases {
		got := QuickAmounts(d(tc.max))
		if len(got) != len(tc.want) {
			t.Fatalf("QuickAmounts(%s) = %v, want %v", tc.max, got, tc.want)
		}
		for i := range got {
			if !got[i].Equal(d(tc.want[i])) {
				t.Fatalf("QuickAmounts(%s) = %v, want %v", tc.max, got, tc.want)
			}
		}
	}
}

func TestProgressAndOverdue(t *testing.T) {
	g := goal("33", "99")
	if got := Progress(g); !got.Equal(d("33.3")) {
		t.Fatalf("expected 33.3, got %s", got)
	}
	if got := Progress(goal("10", "0")); !got.IsZero() {
		t.Fatalf("expected 0 for zero target, got %s", got)
	}

	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	past := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	g.TargetDate = &past
	if !IsOverdue(g, now) {
		t.Fatalf("expected overdue")
	}
	g.IsCompleted = true
	if IsOverdue(g, now) {
		t.Fatalf("completed goals are never overdue")
	}
	g.IsCompleted = false
	g.TargetDate = &today
	if IsOverdue(g, now) {
		t.Fatalf("goal due today is not overdue")
	}
	g.TargetDate = nil
	if IsOverdue(g, now) {
		t.Fatalf("goal without date is not overdue")
	}
}
