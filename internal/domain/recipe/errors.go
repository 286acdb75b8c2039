package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrTitleTooShort       = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong        = errors.New("recipe title must not exceed 200 characters")
	ErrNegativeCookingTime = errors.New("cooking time must not be negative")
	ErrRecipeNotFound      = errors.New("recipe not found")
)
