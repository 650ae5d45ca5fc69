package goals

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"smartbudget-go/internal/domain/money"
	"smartbudget-go/internal/domain/period"
)

var quickAmountSteps = []decimal.Decimal{
	decimal.NewFromInt(25),
	decimal.NewFromInt(50),
	decimal.NewFromInt(100),
}

// Allocate moves amount from the available balance into the goal. The first
// failing check wins: non-positive amount, then available funds, then the
// goal target. On success is_completed is re-derived from the amounts.
func Allocate(goal Goal, amount, availableFunds decimal.Decimal) (Goal, error) {
	if !amount.IsPositive() {
		return goal, ErrInvalidAmount
	}
	if amount.GreaterThan(availableFunds) {
		return goal, ErrInsufficientFunds
	}
	next := goal.CurrentAmount.Add(amount)
	if next.GreaterThan(goal.TargetAmount) {
		return goal, ErrExceedsTarget
	}

	goal.CurrentAmount = next
	goal.IsCompleted = next.GreaterThanOrEqual(goal.TargetAmount)
	return goal, nil
}

// ToggleComplete flips the completion flag without looking at the amounts.
func ToggleComplete(goal Goal) Goal {
	goal.IsCompleted = !goal.IsCompleted
	return goal
}

func Remaining(goal Goal) decimal.Decimal {
	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// MaxAllocation is the largest amount Allocate would accept, never negative.
func MaxAllocation(goal Goal, availableFunds decimal.Decimal) decimal.Decimal {
	limit := money.Min(availableFunds, Remaining(goal))
	if limit.IsNegative() {
		return decimal.Zero
	}
	return limit
}

// QuickAmounts returns the preset amounts that fit under limit, ascending and
// without duplicates. floor(limit) is always offered when it is positive.
func QuickAmounts(limit decimal.Decimal) []decimal.Decimal {
	candidates := append([]decimal.Decimal{}, quickAmountSteps...)
	candidates = append(candidates, limit.Floor())

	result := make([]decimal.Decimal, 0, len(candidates))
	for _, amount := range candidates {
		if !amount.IsPositive() || amount.GreaterThan(limit) {
			continue
		}
		if containsAmount(result, amount) {
			continue
		}
		result = append(result, amount)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LessThan(result[j])
	})
	return result
}

// Progress is current/target as a percentage with one decimal, not capped at 100.
func Progress(goal Goal) decimal.Decimal {
	return money.Percent(goal.CurrentAmount, goal.TargetAmount).Round(1)
}

// IsOverdue reports an unfinished goal whose target date is before today.
func IsOverdue(goal Goal, now time.Time) bool {
	if goal.IsCompleted || goal.TargetDate == nil {
		return false
	}
	return period.StartOfDay(*goal.TargetDate).Before(period.StartOfDay(now))
}

func NewView(goal Goal, now time.Time) View {
	return View{
		Goal:      goal,
		Progress:  Progress(goal),
		Remaining: Remaining(goal),
		IsOverdue: IsOverdue(goal, now),
	}
}

func containsAmount(values []decimal.Decimal, amount decimal.Decimal) bool {
	for _, v := range values {
		if v.Equal(amount) {
			return true
		}
	}
	return false
}

