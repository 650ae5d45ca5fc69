package spending

import "errors"

var (
	ErrEntryNotFound           = errors.New("spending entry not found")
	ErrDescriptionRequired     = errors.New("description is required")
	ErrDescriptionTooLong      = errors.New("description is too long")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategoryInUse           = errors.New("category in use")
	ErrCategoryNameTaken       = errors.New("category name already exists")
	ErrCategoryNameRequired    = errors.New("category name is required")
	ErrCategoryNameTooLong     = errors.New("category name is too long")
	ErrInvalidCategoryColor    = errors.New("invalid category color")
	ErrInvalidCategoryIcon     = errors.New("invalid category icon")
	ErrDefaultCategoryReadOnly = errors.New("default categories cannot be modified")
)
