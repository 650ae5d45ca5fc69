package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	incomedomain "smartbudget-go/internal/domain/income"
	"smartbudget-go/internal/domain/money"
	"smartbudget-go/internal/domain/period"
)

type incomeRequest struct {
	Amount             amountValue `json:"amount"`
	Description        string      `json:"description"`
	SourceID           *string     `json:"source_id"`
	Date               string      `json:"date"`
	IsRecurring        bool        `json:"is_recurring"`
	RecurringFrequency *string     `json:"recurring_frequency"`
}

type incomeResponse struct {
	ID                 string    `json:"id"`
	Amount             float64   `json:"amount"`
	Description        string    `json:"description"`
	SourceID           *string   `json:"source_id"`
	Date               string    `json:"date"`
	IsRecurring        bool      `json:"is_recurring"`
	RecurringFrequency *string   `json:"recurring_frequency"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type incomeSourceResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type incomeSourceTotalResponse struct {
	SourceID string  `json:"source_id"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Total    float64 `json:"total"`
}

type incomeMonthResponse struct {
	Month string  `json:"month"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

type incomeStatsResponse struct {
	Total       float64                     `json:"total"`
	Recurring   float64                     `json:"recurring"`
	AvgPerEntry float64                     `json:"avg_per_entry"`
	Count       int                         `json:"count"`
	BySource    []incomeSourceTotalResponse `json:"by_source"`
	Monthly     []incomeMonthResponse       `json:"monthly"`
}

func (h *Handlers) ListIncome(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	filter, ok := incomeFilter(w, r)
	if !ok {
		return
	}

	entries, err := h.Income.ListEntries(r.Context(), user.ID, filter)
	if err != nil {
		h.log.InternalError("income.list: list entries failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	response := make([]incomeResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toIncomeResponse(entry))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) IncomeStats(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	filter, ok := incomeFilter(w, r)
	if !ok {
		return
	}

	stats, err := h.Income.Stats(r.Context(), user.ID, filter)
	if err != nil {
		h.log.InternalError("income.stats: compute stats failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	bySource := make([]incomeSourceTotalResponse, 0, len(stats.BySource))
	for _, item := range stats.BySource {
		bySource = append(bySource, incomeSourceTotalResponse{
			SourceID: item.SourceID,
			Name:     item.Name,
			Color:    item.Color,
			Total:    amountJSON(item.Total),
		})
	}
	monthly := make([]incomeMonthResponse, 0, len(stats.Monthly))
	for _, item := range stats.Monthly {
		monthly = append(monthly, incomeMonthResponse{
			Month: item.Month,
			Label: item.Label,
			Total: amountJSON(item.Total),
		})
	}

	writeJSON(w, http.StatusOK, incomeStatsResponse{
		Total:       amountJSON(stats.Total),
		Recurring:   amountJSON(stats.Recurring),
		AvgPerEntry: amountJSON(stats.AvgPerEntry),
		Count:       stats.Count,
		BySource:    bySource,
		Monthly:     monthly,
	})
}

func (h *Handlers) ListIncomeSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.Income.ListSources(r.Context())
	if err != nil {
		h.log.InternalError("income.sources: list sources failed", err)
		writeInternalError(w)
		return
	}

	response := make([]incomeSourceResponse, 0, len(sources))
	for _, source := range sources {
		response = append(response, incomeSourceResponse{
			ID:    source.ID,
			Name:  source.Name,
			Color: source.Color,
			Icon:  source.Icon,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	created, err := h.Income.CreateEntry(r.Context(), incomedomain.CreateEntryInput{
		UserID:             user.ID,
		Amount:             req.Amount.Value,
		Description:        req.Description,
		SourceID:           optionalID(req.SourceID),
		Date:               date,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: frequencyParam(req.RecurringFrequency),
	})
	if err != nil {
		if writeIncomeError(w, err) {
			h.log.BusinessError("income.create: validation failed", err, "user_id", user.ID)
			return
		}
		h.log.InternalError("income.create: create entry failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, toIncomeResponse(*created))
}

func (h *Handlers) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Income.UpdateEntry(r.Context(), incomedomain.UpdateEntryInput{
		ID:                 entryID,
		UserID:             user.ID,
		Amount:             req.Amount.Value,
		Description:        req.Description,
		SourceID:           optionalID(req.SourceID),
		Date:               date,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: frequencyParam(req.RecurringFrequency),
	})
	if err != nil {
		if writeIncomeError(w, err) {
			h.log.BusinessError("income.update: rejected", err, "user_id", user.ID, "income_id", entryID)
			return
		}
		h.log.InternalError("income.update: update entry failed", err, "user_id", user.ID, "income_id", entryID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toIncomeResponse(*updated))
}

func (h *Handlers) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Income.DeleteEntry(r.Context(), user.ID, entryID); err != nil {
		if writeIncomeError(w, err) {
			h.log.BusinessError("income.delete: rejected", err, "user_id", user.ID, "income_id", entryID)
			return
		}
		h.log.InternalError("income.delete: delete entry failed", err, "user_id", user.ID, "income_id", entryID)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func incomeFilter(w http.ResponseWriter, r *http.Request) (incomedomain.ListFilter, bool) {
	query := r.URL.Query()
	window, err := period.Parse(query.Get("period"), incomedomain.Periods...)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_period", "period must be one of all, today, week, month, quarter, year")
		return incomedomain.ListFilter{}, false
	}
	return incomedomain.ListFilter{
		SourceID: strings.TrimSpace(query.Get("source_id")),
		Period:   string(window),
	}, true
}

func frequencyParam(value *string) *incomedomain.Frequency {
	if value == nil {
		return nil
	}
	frequency := incomedomain.Frequency(*value)
	return &frequency
}

func writeIncomeError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, incomedomain.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "income_not_found", "income entry not found")
	case errors.Is(err, incomedomain.ErrSourceNotFound):
		writeError(w, http.StatusUnprocessableEntity, "source_not_found", "income source not found")
	case errors.Is(err, incomedomain.ErrInvalidFrequency):
		writeError(w, http.StatusBadRequest, "invalid_frequency", "recurring_frequency is invalid")
	case errors.Is(err, incomedomain.ErrDescriptionRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", "description is required")
	case errors.Is(err, incomedomain.ErrDescriptionTooLong):
		writeError(w, http.StatusBadRequest, "invalid_request", "description must be at most 200 characters")
	case errors.Is(err, money.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_amount", "amount must be greater than zero")
	default:
		return false
	}
	return true
}

func toIncomeResponse(entry incomedomain.Entry) incomeResponse {
	var frequency *string
	if entry.RecurringFrequency != nil {
		value := string(*entry.RecurringFrequency)
		frequency = &value
	}
	return incomeResponse{
		ID:                 entry.ID,
		Amount:             amountJSON(entry.Amount),
		Description:        entry.Description,
		SourceID:           entry.SourceID,
		Date:               formatDate(entry.Date),
		IsRecurring:        entry.IsRecurring,
		RecurringFrequency: frequency,
		CreatedAt:          entry.CreatedAt,
		UpdatedAt:          entry.UpdatedAt,
	}
}
