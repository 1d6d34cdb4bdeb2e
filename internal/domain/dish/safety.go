package dish

import "strings"

// CalorieCeiling is the hard per-dish calorie limit for candidates.
const CalorieCeiling = 1500

// MinDescriptionLength is the quality floor for generated descriptions.
const MinDescriptionLength = 20

// bannedTerms is the fixed denylist applied to name, description, and
// ingredient names. Matching is case-insensitive substring.
var bannedTerms = []string{
	"bleach",
	"poison",
	"toxic",
	"plastic",
	"metal",
	"glass",
	"human",
	"unknown",
}

// Check validates a candidate dish against the deterministic safety rules and
// returns the first rejection reason, or nil when the dish is acceptable.
// It is a pure function: no I/O, no state.
func Check(d *Dish) error {
	if d == nil || strings.TrimSpace(d.Name) == "" ||
		strings.TrimSpace(d.Description) == "" ||
		strings.TrimSpace(d.Cuisine) == "" {
		return ErrMissingFields
	}

	if d.Macros != nil && d.Macros.Calories > CalorieCeiling {
		return ErrCalorieCeiling
	}

	var text strings.Builder
	text.WriteString(d.Name)
	text.WriteByte(' ')
	text.WriteString(d.Description)
	for _, ing := range d.Ingredients {
		text.WriteByte(' ')
		text.WriteString(ing.Name)
	}
	haystack := strings.ToLower(text.String())
	for _, term := range bannedTerms {
		if strings.Contains(haystack, term) {
			return ErrBannedTerm
		}
	}

	if len(d.Description) < MinDescriptionLength {
		return ErrDescriptionTooShort
	}

	// "Recipe for X" style names are a known malformed-generator pattern.
	if strings.Contains(strings.ToLower(d.Name), "recipe") {
		return ErrRecipePattern
	}

	return nil
}

// IsSafe is the boolean contract over Check: callers treat false as "discard
// the candidate, do not persist or show it."
func IsSafe(d *Dish) bool {
	return Check(d) == nil
}
