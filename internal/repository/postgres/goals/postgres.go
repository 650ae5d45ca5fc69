package goals

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	goalsdomain "smartbudget-go/internal/domain/goals"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(goalsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// LockFunds takes a transaction-scoped advisory lock keyed by the user.
func (r *PostgresRepository) LockFunds(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "funds:"+userID).Error
}

const availableFundsQuery = `
SELECT
	(SELECT COALESCE(SUM(amount), 0) FROM income WHERE user_id = @user)
	- (SELECT COALESCE(SUM(amount), 0) FROM spending WHERE user_id = @user)
	- (SELECT COALESCE(SUM(current_amount), 0) FROM goals WHERE user_id = @user)`

func (r *PostgresRepository) AvailableFunds(ctx context.Context, userID string) (decimal.Decimal, error) {
	var available decimal.Decimal
	row := r.db.WithContext(ctx).Raw(availableFundsQuery, sql.Named("user", userID)).Row()
	if err := row.Scan(&available); err != nil {
		return decimal.Zero, err
	}
	return available, nil
}

func (r *PostgresRepository) ListGoals(ctx context.Context, userID string) ([]goalsdomain.Goal, error) {
	var goals []goalsdomain.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresRepository) GetGoalByID(ctx context.Context, userID, goalID string) (*goalsdomain.Goal, error) {
	var goal goalsdomain.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, goalID).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goalsdomain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresRepository) GetGoalForUpdate(ctx context.Context, userID, goalID string) (*goalsdomain.Goal, error) {
	var goal goalsdomain.Goal
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND id = ?", userID, goalID).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goalsdomain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresRepository) CreateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *PostgresRepository) UpdateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	result := r.db.WithContext(ctx).
		Model(&goalsdomain.Goal{}).
		Where("id = ? AND user_id = ?", goal.ID, goal.UserID).
		Updates(map[string]interface{}{
			"title":          goal.Title,
			"description":    goal.Description,
			"target_amount":  goal.TargetAmount,
			"current_amount": goal.CurrentAmount,
			"target_date":    goal.TargetDate,
			"color":          goal.Color,
			"is_completed":   goal.IsCompleted,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return goalsdomain.ErrGoalNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteGoal(ctx context.Context, userID, goalID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&goalsdomain.Goal{}, "user_id = ? AND id = ?", userID, goalID)
	return result.RowsAffected > 0, result.Error
}
