// Package summary derives the user's financial position from the raw rows.
// Nothing here is cached: every call recomputes from the collections passed in.
package summary

import (
	"github.com/shopspring/decimal"

	"smartbudget-go/internal/domain/goals"
	"smartbudget-go/internal/domain/income"
	"smartbudget-go/internal/domain/spending"
)

type Summary struct {
	TotalIncome    decimal.Decimal
	TotalSpending  decimal.Decimal
	TotalAllocated decimal.Decimal
	AvailableFunds decimal.Decimal
}

// Compute totals the three collections. AvailableFunds may be negative.
func Compute(incomeEntries []income.Entry, spendingEntries []spending.Entry, userGoals []goals.Goal) Summary {
	result := Summary{
		TotalIncome:    decimal.Zero,
		TotalSpending:  decimal.Zero,
		TotalAllocated: decimal.Zero,
	}
	for _, entry := range incomeEntries {
		result.TotalIncome = result.TotalIncome.Add(entry.Amount)
	}
	for _, entry := range spendingEntries {
		result.TotalSpending = result.TotalSpending.Add(entry.Amount)
	}
	for _, goal := range userGoals {
		result.TotalAllocated = result.TotalAllocated.Add(goal.CurrentAmount)
	}
	result.AvailableFunds = result.TotalIncome.Sub(result.TotalSpending).Sub(result.TotalAllocated)
	return result
}
