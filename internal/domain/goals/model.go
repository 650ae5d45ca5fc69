package goals

import (
	"time"

	"github.com/shopspring/decimal"
)

type Goal struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	UserID        string          `gorm:"type:uuid;index;not null"`
	Title         string          `gorm:"not null"`
	Description   *string         `gorm:"type:text"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TargetDate    *time.Time      `gorm:"type:date"`
	Color         string          `gorm:"type:text;not null"`
	IsCompleted   bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (Goal) TableName() string {
	return "goals"
}

type CreateGoalInput struct {
	UserID       string
	Title        string
	Description  *string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
	Color        *string
}

type UpdateGoalInput struct {
	ID           string
	UserID       string
	Title        string
	Description  *string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
	Color        *string
}

// View is a goal decorated with the figures shown next to it.
type View struct {
	Goal
	Progress  decimal.Decimal
	Remaining decimal.Decimal
	IsOverdue bool
}

// Allocation describes how much can still be put towards a goal.
type Allocation struct {
	GoalID         string
	AvailableFunds decimal.Decimal
	Remaining      decimal.Decimal
	MaxAllocation  decimal.Decimal
	QuickAmounts   []decimal.Decimal
}
