package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"smartbudget-go/internal/domain/money"
	"smartbudget-go/internal/domain/period"
	spendingdomain "smartbudget-go/internal/domain/spending"
)

type spendingRequest struct {
	Amount      amountValue `json:"amount"`
	Description string      `json:"description"`
	CategoryID  *string     `json:"category_id"`
	Date        string      `json:"date"`
}

type spendingResponse struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type categoryTotalResponse struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Icon       string  `json:"icon"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percent    float64 `json:"percent"`
}

type spendingStatsResponse struct {
	Total             float64                 `json:"total"`
	AvgPerTransaction float64                 `json:"avg_per_transaction"`
	Count             int                     `json:"count"`
	ByCategory        []categoryTotalResponse `json:"by_category"`
}

func (h *Handlers) ListSpending(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	filter, ok := spendingFilter(w, r)
	if !ok {
		return
	}

	entries, err := h.Spending.ListEntries(r.Context(), user.ID, filter)
	if err != nil {
		h.log.InternalError("spending.list: list entries failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	response := make([]spendingResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toSpendingResponse(entry))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) SpendingStats(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	filter, ok := spendingFilter(w, r)
	if !ok {
		return
	}

	stats, err := h.Spending.Stats(r.Context(), user.ID, filter)
	if err != nil {
		h.log.InternalError("spending.stats: compute stats failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	byCategory := make([]categoryTotalResponse, 0, len(stats.ByCategory))
	for _, item := range stats.ByCategory {
		byCategory = append(byCategory, categoryTotalResponse{
			CategoryID: item.CategoryID,
			Name:       item.Name,
			Color:      item.Color,
			Icon:       item.Icon,
			Total:      amountJSON(item.Total),
			Count:      item.Count,
			Percent:    item.Percent.InexactFloat64(),
		})
	}

	writeJSON(w, http.StatusOK, spendingStatsResponse{
		Total:             amountJSON(stats.Total),
		AvgPerTransaction: amountJSON(stats.AvgPerTransaction),
		Count:             stats.Count,
		ByCategory:        byCategory,
	})
}

func (h *Handlers) CreateSpending(w http.ResponseWriter, r *http.Request) {
	var req spendingRequest
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

	created, err := h.Spending.CreateEntry(r.Context(), spendingdomain.CreateEntryInput{
		UserID:      user.ID,
		Amount:      req.Amount.Value,
		Description: req.Description,
		CategoryID:  optionalID(req.CategoryID),
		Date:        date,
	})
	if err != nil {
		if writeSpendingError(w, err) {
			h.log.BusinessError("spending.create: validation failed", err, "user_id", user.ID)
			return
		}
		h.log.InternalError("spending.create: create entry failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, toSpendingResponse(*created))
}

func (h *Handlers) UpdateSpending(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	var req spendingRequest
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

	updated, err := h.Spending.UpdateEntry(r.Context(), spendingdomain.UpdateEntryInput{
		ID:          entryID,
		UserID:      user.ID,
		Amount:      req.Amount.Value,
		Description: req.Description,
		CategoryID:  optionalID(req.CategoryID),
		Date:        date,
	})
	if err != nil {
		if writeSpendingError(w, err) {
			h.log.BusinessError("spending.update: rejected", err, "user_id", user.ID, "spending_id", entryID)
			return
		}
		h.log.InternalError("spending.update: update entry failed", err, "user_id", user.ID, "spending_id", entryID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toSpendingResponse(*updated))
}

func (h *Handlers) DeleteSpending(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Spending.DeleteEntry(r.Context(), user.ID, entryID); err != nil {
		if writeSpendingError(w, err) {
			h.log.BusinessError("spending.delete: rejected", err, "user_id", user.ID, "spending_id", entryID)
			return
		}
		h.log.InternalError("spending.delete: delete entry failed", err, "user_id", user.ID, "spending_id", entryID)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func spendingFilter(w http.ResponseWriter, r *http.Request) (spendingdomain.ListFilter, bool) {
	query := r.URL.Query()
	window, err := period.Parse(query.Get("period"), spendingdomain.Periods...)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_period", "period must be one of all, today, week, month")
		return spendingdomain.ListFilter{}, false
	}
	return spendingdomain.ListFilter{
		CategoryID: strings.TrimSpace(query.Get("category_id")),
		Period:     string(window),
	}, true
}

func writeSpendingError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, spendingdomain.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "spending_not_found", "spending entry not found")
	case errors.Is(err, spendingdomain.ErrCategoryNotFound):
		writeError(w, http.StatusUnprocessableEntity, "category_not_found", "category not found")
	case errors.Is(err, spendingdomain.ErrDescriptionRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", "description is required")
	case errors.Is(err, spendingdomain.ErrDescriptionTooLong):
		writeError(w, http.StatusBadRequest, "invalid_request", "description must be at most 200 characters")
	case errors.Is(err, money.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_amount", "amount must be greater than zero")
	default:
		return false
	}
	return true
}

func toSpendingResponse(entry spendingdomain.Entry) spendingResponse {
	return spendingResponse{
		ID:          entry.ID,
		Amount:      amountJSON(entry.Amount),
		Description: entry.Description,
		CategoryID:  entry.CategoryID,
		Date:        formatDate(entry.Date),
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}
