package handler

import (
	"errors"
	"net/http"
	"time"

	spendingdomain "smartbudget-go/internal/domain/spending"
)

type createCategoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	categories, err := h.Spending.ListCategories(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("categories.list: list categories failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	created, err := h.Spending.CreateCategory(r.Context(), spendingdomain.CreateCategoryInput{
		UserID: user.ID,
		Name:   req.Name,
		Color:  req.Color,
		Icon:   req.Icon,
	})
	if err != nil {
		if writeCategoryError(w, err) {
			h.log.BusinessError("categories.create: validation failed", err, "user_id", user.ID)
			return
		}
		h.log.InternalError("categories.create: create category failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.Name == nil && req.Color == nil && req.Icon == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "no fields to update")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Spending.UpdateCategory(r.Context(), spendingdomain.UpdateCategoryInput{
		UserID:     user.ID,
		CategoryID: categoryID,
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
	})
	if err != nil {
		if writeCategoryError(w, err) {
			h.log.BusinessError("categories.update: rejected", err, "user_id", user.ID, "category_id", categoryID)
			return
		}
		h.log.InternalError("categories.update: update category failed", err, "user_id", user.ID, "category_id", categoryID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Spending.DeleteCategory(r.Context(), user.ID, categoryID); err != nil {
		if writeCategoryError(w, err) {
			h.log.BusinessError("categories.delete: rejected", err, "user_id", user.ID, "category_id", categoryID)
			return
		}
		h.log.InternalError("categories.delete: delete category failed", err, "user_id", user.ID, "category_id", categoryID)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeCategoryError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, spendingdomain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, spendingdomain.ErrDefaultCategoryReadOnly):
		writeError(w, http.StatusForbidden, "category_read_only", "default categories cannot be modified")
	case errors.Is(err, spendingdomain.ErrCategoryInUse):
		writeError(w, http.StatusConflict, "category_in_use", "category is used by spending entries")
	case errors.Is(err, spendingdomain.ErrCategoryNameTaken):
		writeError(w, http.StatusConflict, "category_name_taken", "category name already exists")
	case errors.Is(err, spendingdomain.ErrCategoryNameRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
	case errors.Is(err, spendingdomain.ErrCategoryNameTooLong):
		writeError(w, http.StatusBadRequest, "invalid_request", "name must be at most 50 characters")
	case errors.Is(err, spendingdomain.ErrInvalidCategoryColor):
		writeError(w, http.StatusBadRequest, "invalid_color", "color must be #rrggbb")
	case errors.Is(err, spendingdomain.ErrInvalidCategoryIcon):
		writeError(w, http.StatusBadRequest, "invalid_icon", "icon is not supported")
	default:
		return false
	}
	return true
}

func toCategoryResponse(category spendingdomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		IsDefault: category.IsDefault(),
		CreatedAt: category.CreatedAt,
	}
}
