package handler

import (
	"net/http"

	historydomain "smartbudget-go/internal/domain/history"
)

type summaryResponse struct {
	TotalIncome    float64 `json:"total_income"`
	TotalSpending  float64 `json:"total_spending"`
	TotalAllocated float64 `json:"total_allocated"`
	AvailableFunds float64 `json:"available_funds"`
}

type historyBucketResponse struct {
	Period    string  `json:"period"`
	StartDate string  `json:"start_date"`
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	Net       float64 `json:"net"`
}

type historySummaryResponse struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetIncome     float64 `json:"net_income"`
	SavingsRate   float64 `json:"savings_rate"`
	SavingsBand   string  `json:"savings_band"`
	IncomeCount   int     `json:"income_count"`
	ExpenseCount  int     `json:"expense_count"`
	AvgIncome     float64 `json:"avg_income"`
	AvgExpense    float64 `json:"avg_expense"`
}

type historyResponse struct {
	TimeRange string                  `json:"time_range"`
	GroupBy   string                  `json:"group_by"`
	StartDate string                  `json:"start_date"`
	Buckets   []historyBucketResponse `json:"buckets"`
	Summary   historySummaryResponse  `json:"summary"`
}

func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.Summary.Summary(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("summary.get: compute summary failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:    amountJSON(summary.TotalIncome),
		TotalSpending:  amountJSON(summary.TotalSpending),
		TotalAllocated: amountJSON(summary.TotalAllocated),
		AvailableFunds: amountJSON(summary.AvailableFunds),
	})
}

func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	timeRange := historydomain.ParseTimeRange(query.Get("time_range"))
	groupBy := historydomain.ParseGroupBy(query.Get("group_by"))

	result, err := h.History.History(r.Context(), user.ID, timeRange, groupBy)
	if err != nil {
		h.log.InternalError("history.get: aggregate failed", err, "user_id", user.ID, "time_range", timeRange, "group_by", groupBy)
		writeInternalError(w)
		return
	}

	buckets := make([]historyBucketResponse, 0, len(result.Buckets))
	for _, bucket := range result.Buckets {
		buckets = append(buckets, historyBucketResponse{
			Period:    bucket.Period,
			StartDate: formatDate(bucket.Start),
			Income:    amountJSON(bucket.Income),
			Expenses:  amountJSON(bucket.Expenses),
			Net:       amountJSON(bucket.Net),
		})
	}

	writeJSON(w, http.StatusOK, historyResponse{
		TimeRange: string(result.TimeRange),
		GroupBy:   string(result.GroupBy),
		StartDate: formatDate(result.StartDate),
		Buckets:   buckets,
		Summary: historySummaryResponse{
			TotalIncome:   amountJSON(result.Summary.TotalIncome),
			TotalExpenses: amountJSON(result.Summary.TotalExpenses),
			NetIncome:     amountJSON(result.Summary.NetIncome),
			SavingsRate:   result.Summary.SavingsRate.InexactFloat64(),
			SavingsBand:   string(result.Summary.SavingsBand),
			IncomeCount:   result.Summary.IncomeCount,
			ExpenseCount:  result.Summary.ExpenseCount,
			AvgIncome:     amountJSON(result.Summary.AvgIncome),
			AvgExpense:    amountJSON(result.Summary.AvgExpense),
		},
	})
}
