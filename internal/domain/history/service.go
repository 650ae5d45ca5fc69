package history

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"smartbudget-go/internal/domain/income"
	"smartbudget-go/internal/domain/spending"
)

type IncomeSource interface {
	AllEntries(ctx context.Context, userID string) ([]income.Entry, error)
}

type SpendingSource interface {
	AllEntries(ctx context.Context, userID string) ([]spending.Entry, error)
}

type Service struct {
	income   IncomeSource
	spending SpendingSource
	now      func() time.Time
}

func NewService(incomeSource IncomeSource, spendingSource SpendingSource) *Service {
	return &Service{
		income:   incomeSource,
		spending: spendingSource,
		now:      time.Now,
	}
}

func (s *Service) History(ctx context.Context, userID string, timeRange TimeRange, groupBy GroupBy) (Result, error) {
	var (
		incomeEntries []income.Entry
		expenses      []spending.Entry
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		if incomeEntries, err = s.income.AllEntries(groupCtx, userID); err != nil {
			return fmt.Errorf("load income: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		if expenses, err = s.spending.AllEntries(groupCtx, userID); err != nil {
			return fmt.Errorf("load spending: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	return Aggregate(incomeEntries, expenses, timeRange, groupBy, s.now()), nil
}
