package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartbudget-go/internal/domain/money"
)

const dateLayout = "2006-01-02"

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse(dateLayout, value)
}

func parseDateParam(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// pathID reads a uuid path parameter. ok is false when it is missing or malformed.
func pathID(r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", false
	}
	if _, err := uuid.Parse(value); err != nil {
		return "", false
	}
	return value, true
}

// optionalID treats an empty string like an absent reference.
func optionalID(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// amountValue accepts a JSON number or a numeric string.
type amountValue struct {
	Set   bool
	Value decimal.Decimal
}

func (a *amountValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return money.ErrInvalidAmount
	}
	if strings.HasPrefix(raw, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return money.ErrInvalidAmount
		}
		raw = text
	}

	value, err := money.Parse(raw)
	if err != nil {
		return err
	}
	a.Set = true
	a.Value = value
	return nil
}

func amountJSON(value decimal.Decimal) float64 {
	return value.InexactFloat64()
}

func formatDate(value time.Time) string {
	return value.Format(dateLayout)
}

func formatDatePtr(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := formatDate(*value)
	return &formatted
}
