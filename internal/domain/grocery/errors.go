package grocery

import "errors"

// Domain errors for grocery list operations

var (
	ErrZeroWeekStart = errors.New("week start date is required")
	ErrListNotFound  = errors.New("grocery list not found")
)
