package dish

import "errors"

// Safety rejection reasons. The public contract is a single boolean, but each
// reason stays distinguishable for logging and telemetry.

var (
	ErrMissingFields       = errors.New("dish is missing name, description, or cuisine")
	ErrCalorieCeiling      = errors.New("dish calories exceed the safety ceiling")
	ErrBannedTerm          = errors.New("dish text contains a banned term")
	ErrDescriptionTooShort = errors.New("dish description is below the minimum length")
	ErrRecipePattern       = errors.New("dish name looks like raw generator output")
)
