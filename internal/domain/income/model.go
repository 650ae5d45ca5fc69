package income

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiWeekly  Frequency = "bi-weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	}
	return false
}

type Entry struct {
	ID                 string          `gorm:"type:uuid;primaryKey"`
	UserID             string          `gorm:"type:uuid;index;not null"`
	Amount             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description        string          `gorm:"not null"`
	SourceID           *string         `gorm:"type:uuid"`
	Date               time.Time       `gorm:"type:date;not null"`
	IsRecurring        bool            `gorm:"not null;default:false"`
	RecurringFrequency *Frequency      `gorm:"type:text"`
	CreatedAt          time.Time       `gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string {
	return "income"
}

type Source struct {
	ID    string `gorm:"type:uuid;primaryKey"`
	Name  string `gorm:"not null"`
	Color string `gorm:"type:text;not null"`
	Icon  string `gorm:"type:text;not null"`
}

func (Source) TableName() string {
	return "income_sources"
}

type ListFilter struct {
	SourceID string
	Period   string
}

type CreateEntryInput struct {
	UserID             string
	Amount             decimal.Decimal
	Description        string
	SourceID           *string
	Date               time.Time
	IsRecurring        bool
	RecurringFrequency *Frequency
}

type UpdateEntryInput struct {
	ID                 string
	UserID             string
	Amount             decimal.Decimal
	Description        string
	SourceID           *string
	Date               time.Time
	IsRecurring        bool
	RecurringFrequency *Frequency
}

type SourceTotal struct {
	SourceID string          `json:"source_id"`
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Total    decimal.Decimal `json:"total"`
}

type MonthTotal struct {
	Month string          `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

type Stats struct {
	Total       decimal.Decimal
	Recurring   decimal.Decimal
	AvgPerEntry decimal.Decimal
	Count       int
	BySource    []SourceTotal
	Monthly     []MonthTotal
}
