package menu

import "errors"

// Domain errors for menu operations

var (
	// Regeneration preconditions
	ErrInvalidDayIndex = errors.New("day index must be between 0 and 6")
	ErrNoMenu          = errors.New("no menu has been generated")

	// Structural validation
	ErrMissingDays       = errors.New("menu days are required")
	ErrWrongDayCount     = errors.New("menu must contain exactly 7 days")
	ErrServingSizeRange  = errors.New("serving size must be between 10 and 100")
	ErrMissingRecipe     = errors.New("every menu item must reference a recipe")
	ErrDayIndexMismatch  = errors.New("day index does not match its position in the week")
	ErrBreakfastDiverged = errors.New("daily breakfast special differs from the weekly breakfast special")

	// Catalog storage
	ErrCatalogNotFound  = errors.New("recipe catalog not found")
	ErrCatalogMalformed = errors.New("recipe catalog is malformed")

	// Export
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
