package mealplan

import "errors"

// Domain errors for meal calendar operations

var (
	ErrUnknownSlot   = errors.New("unknown meal slot")
	ErrZeroDate      = errors.New("scheduled date is required")
	ErrInvertedRange = errors.New("range start must not be after range end")
	ErrMissingRecipe = errors.New("a recipe reference is required")
)
