package goals

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// LockFunds serializes balance-changing writes for one user until the
	// surrounding transaction ends.
	LockFunds(ctx context.Context, userID string) error
	// ListGoals returns the user's goals, newest first.
	ListGoals(ctx context.Context, userID string) ([]Goal, error)
	GetGoalByID(ctx context.Context, userID, goalID string) (*Goal, error)
	// GetGoalForUpdate is GetGoalByID holding a row lock inside a transaction.
	GetGoalForUpdate(ctx context.Context, userID, goalID string) (*Goal, error)
	CreateGoal(ctx context.Context, goal *Goal) error
	UpdateGoal(ctx context.Context, goal *Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) (bool, error)
	FundsProvider
}

// FundsProvider reports the user's unallocated balance.
type FundsProvider interface {
	AvailableFunds(ctx context.Context, userID string) (decimal.Decimal, error)
}
