package income

import "errors"

var (
	ErrEntryNotFound       = errors.New("income entry not found")
	ErrSourceNotFound      = errors.New("income source not found")
	ErrInvalidFrequency    = errors.New("invalid recurring frequency")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description is too long")
)
