package goals

import "errors"

var (
	ErrGoalNotFound       = errors.New("goal not found")
	ErrInvalidAmount      = errors.New("allocation amount must be greater than zero")
	ErrInsufficientFunds  = errors.New("insufficient available funds")
	ErrExceedsTarget      = errors.New("allocation exceeds goal target")
	ErrTargetBelowCurrent = errors.New("target amount is below the allocated amount")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title is too long")
	ErrInvalidTarget      = errors.New("target amount must be greater than zero")
	ErrInvalidColor       = errors.New("invalid goal color")
)
