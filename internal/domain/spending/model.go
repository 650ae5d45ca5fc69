package spending

import (
	"time"

	"github.com/shopspring/decimal"
)

type Entry struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description string          `gorm:"not null"`
	CategoryID  *string         `gorm:"type:uuid"`
	Date        time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string {
	return "spending"
}

// Category rows with a nil UserID are defaults shared by every user.
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    *string   `gorm:"type:uuid;index"`
	Name      string    `gorm:"not null"`
	Color     string    `gorm:"type:text;not null"`
	Icon      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}

func (c Category) IsDefault() bool {
	return c.UserID == nil
}

type ListFilter struct {
	CategoryID string
	Period     string
}

type CreateEntryInput struct {
	UserID      string
	Amount      decimal.Decimal
	Description string
	CategoryID  *string
	Date        time.Time
}

type UpdateEntryInput struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Description string
	CategoryID  *string
	Date        time.Time
}

type CreateCategoryInput struct {
	UserID string
	Name   string
	Color  *string
	Icon   *string
}

type UpdateCategoryInput struct {
	UserID     string
	CategoryID string
	Name       *string
	Color      *string
	Icon       *string
}

type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      string
	Icon       string
	Total      decimal.Decimal
	Count      int
	Percent    decimal.Decimal
}

type Stats struct {
	Total             decimal.Decimal
	AvgPerTransaction decimal.Decimal
	Count             int
	ByCategory        []CategoryTotal
}
