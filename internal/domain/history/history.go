// Package history buckets income and expenses over a time window.
package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"smartbudget-go/internal/domain/income"
	"smartbudget-go/internal/domain/money"
	"smartbudget-go/internal/domain/period"
	"smartbudget-go/internal/domain/spending"
)

type TimeRange string

const (
	Range3Months TimeRange = "3months"
	Range6Months TimeRange = "6months"
	RangeYear    TimeRange = "year"
	RangeAll     TimeRange = "all"
)

type GroupBy string

const (
	GroupWeek    GroupBy = "week"
	GroupMonth   GroupBy = "month"
	GroupQuarter GroupBy = "quarter"
)

// allTimeFloor is the window start for RangeAll.
var allTimeFloor = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// ParseTimeRange maps unknown values to the six month default.
func ParseTimeRange(value string) TimeRange {
	switch r := TimeRange(strings.ToLower(strings.TrimSpace(value))); r {
	case Range3Months, Range6Months, RangeYear, RangeAll:
		return r
	}
	return Range6Months
}

// ParseGroupBy maps unknown values to monthly buckets.
func ParseGroupBy(value string) GroupBy {
	switch g := GroupBy(strings.ToLower(strings.TrimSpace(value))); g {
	case GroupWeek, GroupMonth, GroupQuarter:
		return g
	}
	return GroupMonth
}

type Bucket struct {
	Period   string
	Start    time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// SavingsBand grades a savings rate.
type SavingsBand string

const (
	BandExcellent SavingsBand = "excellent"
	BandGood      SavingsBand = "good"
	BandLow       SavingsBand = "low"
)

var (
	excellentRate = decimal.NewFromInt(20)
	goodRate      = decimal.NewFromInt(10)
)

// BandFor grades rate: 20% and up is excellent, 10% and up is good.
func BandFor(rate decimal.Decimal) SavingsBand {
	switch {
	case rate.GreaterThanOrEqual(excellentRate):
		return BandExcellent
	case rate.GreaterThanOrEqual(goodRate):
		return BandGood
	default:
		return BandLow
	}
}

// Summary covers the windowed entries. SavingsRate is a percentage rounded
// to two places; averages are per entry.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
	SavingsRate   decimal.Decimal
	SavingsBand   SavingsBand
	IncomeCount   int
	ExpenseCount  int
	AvgIncome     decimal.Decimal
	AvgExpense    decimal.Decimal
}

type Result struct {
	TimeRange TimeRange
	GroupBy   GroupBy
	StartDate time.Time
	Buckets   []Bucket
	Summary   Summary
}

// WindowStart returns the first calendar day included in the range.
func WindowStart(timeRange TimeRange, now time.Time) time.Time {
	today := period.StartOfDay(now)
	switch timeRange {
	case Range3Months:
		return today.AddDate(0, -3, 0)
	case RangeYear:
		return today.AddDate(-1, 0, 0)
	case RangeAll:
		return allTimeFloor
	default:
		return today.AddDate(0, -6, 0)
	}
}

// BucketStart returns the first day of the bucket containing date and its label.
// Weeks start on Monday.
func BucketStart(date time.Time, groupBy GroupBy) (time.Time, string) {
	date = period.StartOfDay(date)
	switch groupBy {
	case GroupWeek:
		offset := int(date.Weekday()) - 1
		if date.Weekday() == time.Sunday {
			offset = 6
		}
		monday := date.AddDate(0, 0, -offset)
		return monday, monday.Format("Jan 2")
	case GroupQuarter:
		quarter := period.QuarterOf(date)
		start := time.Date(date.Year(), time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return start, fmt.Sprintf("Q%d %d", quarter, date.Year())
	default:
		start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.Format("Jan 2006")
	}
}

// Aggregate windows the entries, buckets them and summarises the window.
// Buckets are ordered by their start date.
func Aggregate(incomeEntries []income.Entry, expenses []spending.Entry, timeRange TimeRange, groupBy GroupBy, now time.Time) Result {
	timeRange = ParseTimeRange(string(timeRange))
	groupBy = ParseGroupBy(string(groupBy))
	start := WindowStart(timeRange, now)

	buckets := make(map[time.Time]*Bucket)
	bucketFor := func(date time.Time) *Bucket {
		key, label := BucketStart(date, groupBy)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &Bucket{Period: label, Start: key, Income: decimal.Zero, Expenses: decimal.Zero}
			buckets[key] = bucket
		}
		return bucket
	}

	summary := Summary{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}

	for _, entry := range incomeEntries {
		if period.StartOfDay(entry.Date).Before(start) {
			continue
		}
		bucket := bucketFor(entry.Date)
		bucket.Income = bucket.Income.Add(entry.Amount)
		summary.TotalIncome = summary.TotalIncome.Add(entry.Amount)
		summary.IncomeCount++
	}
	for _, entry := range expenses {
		if period.StartOfDay(entry.Date).Before(start) {
			continue
		}
		bucket := bucketFor(entry.Date)
		bucket.Expenses = bucket.Expenses.Add(entry.Amount)
		summary.TotalExpenses = summary.TotalExpenses.Add(entry.Amount)
		summary.ExpenseCount++
	}

	ordered := make([]Bucket, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.Net = bucket.Income.Sub(bucket.Expenses)
		ordered = append(ordered, *bucket)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Start.Equal(ordered[j].Start) {
			return ordered[i].Start.Before(ordered[j].Start)
		}
		return ordered[i].Period < ordered[j].Period
	})

	summary.NetIncome = summary.TotalIncome.Sub(summary.TotalExpenses)
	summary.SavingsRate = money.Percent(summary.NetIncome, summary.TotalIncome).Round(2)
	summary.SavingsBand = BandFor(summary.SavingsRate)
	summary.AvgIncome = money.Normalize(money.Average(summary.TotalIncome, summary.IncomeCount))
	summary.AvgExpense = money.Normalize(money.Average(summary.TotalExpenses, summary.ExpenseCount))

	return Result{
		TimeRange: timeRange,
		GroupBy:   groupBy,
		StartDate: start,
		Buckets:   ordered,
		Summary:   summary,
	}
}
