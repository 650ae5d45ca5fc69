package summary

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"smartbudget-go/internal/domain/goals"
	"smartbudget-go/internal/domain/income"
	"smartbudget-go/internal/domain/spending"
)

type IncomeSource interface {
	AllEntries(ctx context.Context, userID string) ([]income.Entry, error)
}

type SpendingSource interface {
	AllEntries(ctx context.Context, userID string) ([]spending.Entry, error)
}

type GoalsSource interface {
	ListGoals(ctx context.Context, userID string) ([]goals.Goal, error)
}

type Service struct {
	income   IncomeSource
	spending SpendingSource
	goals    GoalsSource
}

func NewService(incomeSource IncomeSource, spendingSource SpendingSource, goalsSource GoalsSource) *Service {
	return &Service{
		income:   incomeSource,
		spending: spendingSource,
		goals:    goalsSource,
	}
}

func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	var (
		incomeEntries   []income.Entry
		spendingEntries []spending.Entry
		userGoals       []goals.Goal
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		incomeEntries, err = s.income.AllEntries(groupCtx, userID)
		if err != nil {
			return fmt.Errorf("load income: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		spendingEntries, err = s.spending.AllEntries(groupCtx, userID)
		if err != nil {
			return fmt.Errorf("load spending: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		userGoals, err = s.goals.ListGoals(groupCtx, userID)
		if err != nil {
			return fmt.Errorf("load goals: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return Summary{}, err
	}

	return Compute(incomeEntries, spendingEntries, userGoals), nil
}
