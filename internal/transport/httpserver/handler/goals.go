package handler

import (
	"errors"
	"net/http"
	"time"

	goalsdomain "smartbudget-go/internal/domain/goals"
)

type goalRequest struct {
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	TargetAmount amountValue `json:"target_amount"`
	TargetDate   *string     `json:"target_date"`
	Color        *string     `json:"color"`
}

type allocateRequest struct {
	Amount amountValue `json:"amount"`
}

type goalResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	TargetDate    *string   `json:"target_date"`
	Color         string    `json:"color"`
	IsCompleted   bool      `json:"is_completed"`
	Progress      float64   `json:"progress"`
	Remaining     float64   `json:"remaining"`
	IsOverdue     bool      `json:"is_overdue"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type allocationResponse struct {
	GoalID         string    `json:"goal_id"`
	AvailableFunds float64   `json:"available_funds"`
	Remaining      float64   `json:"remaining"`
	MaxAllocation  float64   `json:"max_allocation"`
	QuickAmounts   []float64 `json:"quick_amounts"`
}

func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	views, err := h.Goals.ListGoals(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("goals.list: list goals failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	response := make([]goalResponse, 0, len(views))
	for _, view := range views {
		response = append(response, toGoalResponse(view))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	targetDate, err := parseDateParam(req.TargetDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "target_date must be YYYY-MM-DD")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	created, err := h.Goals.CreateGoal(r.Context(), goalsdomain.CreateGoalInput{
		UserID:       user.ID,
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount.Value,
		TargetDate:   targetDate,
		Color:        req.Color,
	})
	if err != nil {
		if writeGoalError(w, err) {
			h.log.BusinessError("goals.create: validation failed", err, "user_id", user.ID)
			return
		}
		h.log.InternalError("goals.create: create goal failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	h.writeGoal(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	targetDate, err := parseDateParam(req.TargetDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "target_date must be YYYY-MM-DD")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Goals.UpdateGoal(r.Context(), goalsdomain.UpdateGoalInput{
		ID:           goalID,
		UserID:       user.ID,
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount.Value,
		TargetDate:   targetDate,
		Color:        req.Color,
	})
	if err != nil {
		if writeGoalError(w, err) {
			h.log.BusinessError("goals.update: rejected", err, "user_id", user.ID, "goal_id", goalID)
			return
		}
		h.log.InternalError("goals.update: update goal failed", err, "user_id", user.ID, "goal_id", goalID)
		writeInternalError(w)
		return
	}

	h.writeGoal(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Goals.DeleteGoal(r.Context(), user.ID, goalID); err != nil {
		if writeGoalError(w, err) {
			h.log.BusinessError("goals.delete: rejected", err, "user_id", user.ID, "goal_id", goalID)
			return
		}
		h.log.InternalError("goals.delete: delete goal failed", err, "user_id", user.ID, "goal_id", goalID)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GoalAllocation(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	allocation, err := h.Goals.Allocation(r.Context(), user.ID, goalID)
	if err != nil {
		if writeGoalError(w, err) {
			h.log.BusinessError("goals.allocation: rejected", err, "user_id", user.ID, "goal_id", goalID)
			return
		}
		h.log.InternalError("goals.allocation: load allocation failed", err, "user_id", user.ID, "goal_id", goalID)
		writeInternalError(w)
		return
	}

	quick := make([]float64, 0, len(allocation.QuickAmounts))
	for _, amount := range allocation.QuickAmounts {
		quick = append(quick, amountJSON(amount))
	}
	writeJSON(w, http.StatusOK, allocationResponse{
		GoalID:         allocation.GoalID,
		AvailableFunds: amountJSON(allocation.AvailableFunds),
		Remaining:      amountJSON(allocation.Remaining),
		MaxAllocation:  amountJSON(allocation.MaxAllocation),
		QuickAmounts:   quick,
	})
}

func (h *Handlers) AllocateToGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	var req allocateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if !req.Amount.Set {
		writeError(w, http.StatusBadRequest, "invalid_amount", "amount is required")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Goals.AllocateFunds(r.Context(), user.ID, goalID, req.Amount.Value)
	if err != nil {
		if writeGoalError(w, err) {
			h.log.BusinessError("goals.allocate: rejected", err, "user_id", user.ID, "goal_id", goalID)
			return
		}
		h.log.InternalError("goals.allocate: allocate failed", err, "user_id", user.ID, "goal_id", goalID)
		writeInternalError(w)
		return
	}

	h.writeGoal(w, http.StatusOK, updated)
}

func (h *Handlers) ToggleGoalComplete(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	toggled, err := h.Goals.ToggleComplete(r.Context(), user.ID, goalID)
	if err != nil {
		if writeGoalError(w, err) {
			h.log.BusinessError("goals.toggle: rejected", err, "user_id", user.ID, "goal_id", goalID)
			return
		}
		h.log.InternalError("goals.toggle: toggle failed", err, "user_id", user.ID, "goal_id", goalID)
		writeInternalError(w)
		return
	}

	h.writeGoal(w, http.StatusOK, toggled)
}

func (h *Handlers) writeGoal(w http.ResponseWriter, status int, goal *goalsdomain.Goal) {
	writeJSON(w, status, toGoalResponse(goalsdomain.NewView(*goal, h.now())))
}

func writeGoalError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, goalsdomain.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "goal_not_found", "goal not found")
	case errors.Is(err, goalsdomain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_amount", "amount must be greater than zero")
	case errors.Is(err, goalsdomain.ErrInsufficientFunds):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_funds", "insufficient available funds")
	case errors.Is(err, goalsdomain.ErrExceedsTarget):
		writeError(w, http.StatusUnprocessableEntity, "exceeds_target", "allocation exceeds goal target")
	case errors.Is(err, goalsdomain.ErrTargetBelowCurrent):
		writeError(w, http.StatusUnprocessableEntity, "target_below_current", "target amount is below the allocated amount")
	case errors.Is(err, goalsdomain.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
	case errors.Is(err, goalsdomain.ErrTitleTooLong):
		writeError(w, http.StatusBadRequest, "invalid_request", "title must be at most 100 characters")
	case errors.Is(err, goalsdomain.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, "invalid_amount", "target_amount must be greater than zero")
	case errors.Is(err, goalsdomain.ErrInvalidColor):
		writeError(w, http.StatusBadRequest, "invalid_color", "color must be #rrggbb")
	default:
		return false
	}
	return true
}

func toGoalResponse(view goalsdomain.View) goalResponse {
	return goalResponse{
		ID:            view.ID,
		Title:         view.Title,
		Description:   view.Description,
		TargetAmount:  amountJSON(view.TargetAmount),
		CurrentAmount: amountJSON(view.CurrentAmount),
		TargetDate:    formatDatePtr(view.TargetDate),
		Color:         view.Color,
		IsCompleted:   view.IsCompleted,
		Progress:      view.Progress.InexactFloat64(),
		Remaining:     amountJSON(view.Remaining),
		IsOverdue:     view.IsOverdue,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
	}
}
