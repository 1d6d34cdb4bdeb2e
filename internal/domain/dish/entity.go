// Package dish contains the dish candidate model produced by generation,
// the static dish template catalog, and the deterministic safety checks
// every candidate passes before it may be cached or shown to a user.
package dish

import "github.com/mealforge/v1/internal/domain/ingredient"

// MealSlot identifies which meal of the day a dish targets.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// Ingredient is one ingredient line of a dish candidate.
type Ingredient struct {
	Name     string              `json:"name"`
	Category ingredient.Category `json:"category,omitempty"`
	Quantity string              `json:"quantity,omitempty"`
}

// Macros holds per-serving nutritional estimates.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber,omitempty"`
}

// Dish is a candidate recommendation. Candidates are ephemeral: created per
// request, cached or discarded, never persisted automatically.
type Dish struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Cuisine     string                `json:"cuisine"`
	Slot        MealSlot              `json:"slot,omitempty"`
	Ingredients []Ingredient          `json:"ingredients,omitempty"`
	Macros      *Macros               `json:"macros,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	HealthTags  []string              `json:"health_tags,omitempty"`
	Allergens   []ingredient.Allergen `json:"allergens,omitempty"`
	Source      Source                `json:"source,omitempty"`
}

// Source records which pipeline stage produced a candidate.
type Source string

const (
	SourcePreWarm   Source = "prewarm"
	SourceCache     Source = "cache"
	SourcePersona   Source = "persona"
	SourceVector    Source = "vector"
	SourceGenerated Source = "generated"
)

// IngredientNames returns the names of all ingredient lines, in order.
func (d *Dish) IngredientNames() []string {
	names := make([]string, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// DietaryTag marks a template's dietary compatibility.
type DietaryTag string

const (
	TagVegetarian DietaryTag = "vegetarian"
	TagVegan      DietaryTag = "vegan"
	TagNonVeg     DietaryTag = "non-vegetarian"
)

// Template is a named canonical dish from the static catalog. Read-only.
type Template struct {
	Name                 string       `json:"name"`
	Cuisine              string       `json:"cuisine"`
	EssentialIngredients []string     `json:"essential_ingredients"`
	DietaryTags          []DietaryTag `json:"dietary_tags,omitempty"`
	Slot                 MealSlot     `json:"slot,omitempty"`
}

// HasTag reports whether the template carries the given dietary tag.
func (t *Template) HasTag(tag DietaryTag) bool {
	for _, have := range t.DietaryTags {
		if have == tag {
			return true
		}
	}
	return false
}
